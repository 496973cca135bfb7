package router

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallback(t *testing.T) {
	cases := []struct {
		name    string
		cb      *tele.Callback
		key     string
		payload string
	}{
		{"nil", nil, "", ""},
		{"unique set", &tele.Callback{Unique: "confirm", Data: "yes"}, "confirm", "yes"},
		{"telebot framed", &tele.Callback{Data: "\fconfirm|yes"}, "confirm", "yes"},
		{"raw key colon payload", &tele.Callback{Data: "reply_to:123456789"}, "reply_to", "123456789"},
		{"bare key", &tele.Callback{Data: "refresh"}, "refresh", ""},
	}
	for _, tc := range cases {
		key, payload := parseCallback(tc.cb)
		if key != tc.key || payload != tc.payload {
			t.Fatalf("%s: parseCallback = (%q, %q), want (%q, %q)", tc.name, key, payload, tc.key, tc.payload)
		}
	}
}

func TestNormalizeHandlerName(t *testing.T) {
	cases := map[string]string{
		"":          "unknown",
		"/start":    "start",
		"/Cancel":   "cancel",
		"FSM Step":  "fsm_step",
		"  /help  ": "help",
	}
	for in, want := range cases {
		if got := normalizeHandlerName(in); got != want {
			t.Fatalf("normalizeHandlerName(%q) = %q, want %q", in, got, want)
		}
	}
}
