package telegram

import (
	"testing"

	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestLookupCommandNormalizesSlash(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     noopHandler,
		Description: "start",
	})

	key, cmd, ok := reg.LookupCommand("start")
	if !ok {
		t.Fatal("bare name not resolved")
	}
	if key != "/start" || cmd.Description != "start" {
		t.Fatalf("got key %q, description %q", key, cmd.Description)
	}

	if _, _, ok := reg.LookupCommand("/unknown"); ok {
		t.Fatal("unknown command resolved")
	}
}

func TestListCommandsSkipsHiddenAndAdminOnly(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "start"})
	reg.RegisterCommand("/contact", commands.Command{Handler: noopHandler, Description: "contact"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noopHandler, Description: "debug", Hidden: true})
	reg.RegisterCommand("/broadcast", commands.Command{Handler: noopHandler, Description: "broadcast", AdminOnly: true})

	list := reg.ListCommands(true)
	if len(list) != 2 {
		t.Fatalf("visible commands: got %d, want 2", len(list))
	}
	if list[0].Text != "/contact" || list[1].Text != "/start" {
		t.Fatalf("unexpected order: %q, %q", list[0].Text, list[1].Text)
	}
}

func TestRegisterTextLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterText("Связаться с нами", noopHandler)

	if _, ok := reg.LookupText("Связаться с нами"); !ok {
		t.Fatal("registered label not found")
	}
	if _, ok := reg.LookupText("other"); ok {
		t.Fatal("unregistered label found")
	}
}

func TestRegisterCallbackLookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("reply_to", noopHandler); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := reg.GetCallback("reply_to"); !ok {
		t.Fatal("registered callback not found")
	}
	if got := reg.ListCallbacks(); len(got) != 1 || got[0] != "reply_to" {
		t.Fatalf("callback keys: %v", got)
	}
}
