package notify

import (
	"strings"
	"testing"

	"github.com/EvgenijZaharo/medspravkiBot/bot/payload"

	tele "gopkg.in/telebot.v4"
)

func TestContactNote(t *testing.T) {
	user := &tele.User{ID: 42, Username: "ivan", FirstName: "Иван"}
	got := ContactNote(user, "привет")
	want := "📩 Новое сообщение\nОт: @ivan\nID: 42\n\nпривет"
	if got != want {
		t.Fatalf("ContactNote = %q, want %q", got, want)
	}
}

func TestContactNoteFallsBackToFirstName(t *testing.T) {
	user := &tele.User{ID: 42, FirstName: "Иван"}
	got := ContactNote(user, "привет")
	if !strings.Contains(got, "От: @Иван\n") {
		t.Fatalf("expected first name fallback, got %q", got)
	}
}

func TestHelpNote(t *testing.T) {
	user := &tele.User{ID: 7, Username: "petya"}
	got := HelpNote(user, "Пётр", "+79991234567", "справка 086")
	want := "📩 Новый запрос помощи со справкой:\nОт: @petya\nID: 7\nИмя: Пётр\nНомер: +79991234567\nЗапрос: справка 086"
	if got != want {
		t.Fatalf("HelpNote = %q, want %q", got, want)
	}
}

func TestReplyMarkupCarriesParsablePayload(t *testing.T) {
	markup := ReplyMarkup(123456789)
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("unexpected keyboard shape: %+v", markup.InlineKeyboard)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Text != "✉️ Ответить" {
		t.Fatalf("button text = %q", btn.Text)
	}
	id, err := payload.ParseReply(btn.Data)
	if err != nil {
		t.Fatalf("ParseReply(%q): %v", btn.Data, err)
	}
	if id != 123456789 {
		t.Fatalf("parsed target = %d", id)
	}
}
