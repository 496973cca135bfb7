package flows

import (
	"github.com/EvgenijZaharo/medspravkiBot/bot/notify"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// ContactStart begins the contact conversation.
func (f *Flows) ContactStart(c tele.Context) error {
	if !f.entryAllowed(c, state.FlowContact) {
		return nil
	}
	f.states.Begin(c.Sender().ID, state.FlowContact, state.StepContactMessage)
	return tghelpers.SendText(c, TextContactPrompt)
}

// contactMessage relays the user's message to the administrator and
// confirms. The notification carries a reply button for the admin.
func (f *Flows) contactMessage(c tele.Context) error {
	user := c.Sender()
	f.courier.Dispatch(c, f.adminID, notify.ContactNote(user, c.Text()), notify.ReplyMarkup(user.ID))
	f.states.Finish(user.ID)
	return tghelpers.SendText(c, TextContactSent)
}
