package flows

import (
	"strings"

	"github.com/EvgenijZaharo/medspravkiBot/bot/notify"
	"github.com/EvgenijZaharo/medspravkiBot/bot/phone"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// HelpStart begins the certificate help request conversation.
func (f *Flows) HelpStart(c tele.Context) error {
	if !f.entryAllowed(c, state.FlowHelp) {
		return nil
	}
	f.states.Begin(c.Sender().ID, state.FlowHelp, state.StepHelpName)
	return tghelpers.SendText(c, TextHelpAskName)
}

func (f *Flows) helpName(c tele.Context) error {
	name := strings.TrimSpace(c.Text())
	if name == "" {
		return tghelpers.SendText(c, TextHelpNameEmpty)
	}
	userID := c.Sender().ID
	f.states.Update(userID, func(s *state.Scratch) { s.Name = name })
	f.states.Advance(userID, state.StepHelpPhone)
	return tghelpers.SendText(c, TextHelpAskPhone)
}

func (f *Flows) helpPhone(c tele.Context) error {
	number := strings.TrimSpace(c.Text())
	if !phone.Validate(number) {
		return tghelpers.SendText(c, TextHelpBadPhone)
	}
	userID := c.Sender().ID
	f.states.Update(userID, func(s *state.Scratch) { s.Phone = number })
	f.states.Advance(userID, state.StepHelpText)
	return tghelpers.SendText(c, TextHelpAskText)
}

func (f *Flows) helpText(c tele.Context) error {
	user := c.Sender()
	request := strings.TrimSpace(c.Text())

	sess, ok := f.states.Session(user.ID)
	if !ok {
		return nil
	}
	note := notify.HelpNote(user, sess.Scratch.Name, sess.Scratch.Phone, request)
	f.courier.Dispatch(c, f.adminID, note, notify.ReplyMarkup(user.ID))
	f.states.Finish(user.ID)
	return tghelpers.SendWithMarkup(c, TextHelpSent, MainMenu())
}
