package notify

import (
	"fmt"

	"github.com/EvgenijZaharo/medspravkiBot/bot/payload"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// handle returns the user's username or, if they have none, the first name.
func handle(user *tele.User) string {
	if user == nil {
		return ""
	}
	if user.Username != "" {
		return user.Username
	}
	return user.FirstName
}

// ContactNote formats the admin notification for a contact message.
func ContactNote(user *tele.User, message string) string {
	return fmt.Sprintf("📩 Новое сообщение\nОт: @%s\nID: %d\n\n%s", handle(user), user.ID, message)
}

// HelpNote formats the admin notification for a certificate help request.
func HelpNote(user *tele.User, name, phone, request string) string {
	return fmt.Sprintf(
		"📩 Новый запрос помощи со справкой:\nОт: @%s\nID: %d\nИмя: %s\nНомер: %s\nЗапрос: %s",
		handle(user), user.ID, name, phone, request,
	)
}

// AdminReply formats the message delivered to a user when the
// administrator answers them.
func AdminReply(text string) string {
	return "📨 Ответ от администратора:\n\n" + text
}

// ReplyMarkup builds the single-button "answer this user" keyboard
// attached to admin notifications.
func ReplyMarkup(userID int64) *tele.ReplyMarkup {
	return keyboard.InlineAction("✉️ Ответить", payload.Reply(userID))
}
