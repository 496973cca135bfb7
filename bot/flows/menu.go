package flows

import (
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// MainMenu builds the persistent reply keyboard with the two entry buttons.
func MainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{MenuContact, MenuHelp})
}
