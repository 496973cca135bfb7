package telegram

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func TestBuildPollerLongpollDefaults(t *testing.T) {
	p := BuildPoller(PollerOptions{RunMode: RunModeLongpoll})
	lp, ok := p.(*tele.LongPoller)
	if !ok {
		t.Fatalf("got %T, want *tele.LongPoller", p)
	}
	if lp.Timeout != 10*time.Second {
		t.Fatalf("default timeout: got %v", lp.Timeout)
	}

	p = BuildPoller(PollerOptions{RunMode: "", LongPollTimeoutSeconds: 25})
	lp, ok = p.(*tele.LongPoller)
	if !ok {
		t.Fatalf("empty run mode: got %T, want *tele.LongPoller", p)
	}
	if lp.Timeout != 25*time.Second {
		t.Fatalf("configured timeout: got %v", lp.Timeout)
	}
}

func TestBuildPollerWebhook(t *testing.T) {
	p := BuildPoller(PollerOptions{
		RunMode:       " Webhook ",
		WebhookListen: "0.0.0.0",
		WebhookPort:   8443,
		WebhookURL:    "https://bot.example.org/hook",
	})
	wh, ok := p.(*tele.Webhook)
	if !ok {
		t.Fatalf("got %T, want *tele.Webhook", p)
	}
	if wh.Listen != "0.0.0.0:8443" {
		t.Fatalf("listen: got %q", wh.Listen)
	}
	if wh.Endpoint == nil || wh.Endpoint.PublicURL != "https://bot.example.org/hook" {
		t.Fatalf("endpoint: got %+v", wh.Endpoint)
	}
}
