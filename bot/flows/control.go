package flows

import (
	"log/slog"

	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// Start greets the user and shows the main menu. It never touches an
// active conversation, matching how the bot historically behaved.
func (f *Flows) Start(c tele.Context) error {
	return tghelpers.SendWithMarkup(c, TextWelcome, MainMenu())
}

// Cancel aborts whatever conversation the user has going. Without an
// active one it still acknowledges, so pressing /cancel is always safe.
func (f *Flows) Cancel(c tele.Context) error {
	f.states.Finish(c.Sender().ID)
	return tghelpers.SendWithMarkup(c, TextCancelled, MainMenu())
}

// entryAllowed reports whether the user may start a new flow. A user
// mid-flow keeps their conversation; the trigger is dropped with a log.
func (f *Flows) entryAllowed(c tele.Context, flow state.Flow) bool {
	userID := c.Sender().ID
	active := f.states.Active(userID)
	if active == state.FlowNone {
		return true
	}
	logger.Debug(tghelpers.BuildContext(c), "fsm", "flow.entry_ignored",
		slog.Int64("user_id", userID),
		slog.String("flow", string(active)),
		slog.String("action", string(flow)),
	)
	return false
}
