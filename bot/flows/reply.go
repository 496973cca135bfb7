package flows

import (
	"fmt"
	"log/slog"

	"github.com/EvgenijZaharo/medspravkiBot/bot/notify"
	"github.com/EvgenijZaharo/medspravkiBot/bot/payload"
	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// ReplyCallback handles the "✉️ Ответить" button under an admin
// notification. Only the administrator may use it; anyone else gets the
// notification edited into a refusal.
func (f *Flows) ReplyCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	sender := c.Sender()
	if sender == nil || sender.ID != f.adminID {
		return c.Edit(TextAdminOnly)
	}

	target, err := payload.ParseReply(cb.Data)
	if err != nil {
		logger.Warn(tghelpers.BuildContext(c), "flow.reply", "reply.bad_payload",
			slog.String("payload", logger.SanitizeLimit(cb.Data, 64)),
			slog.String("err", err.Error()),
		)
		return nil
	}

	// Pressing a second button before sending the first reply switches
	// the target. Last writer wins, but loudly.
	retarget := f.states.Active(sender.ID) == state.FlowAdminReply
	f.states.Begin(sender.ID, state.FlowAdminReply, state.StepReplyText)
	f.states.Update(sender.ID, func(s *state.Scratch) { s.ReplyTo = target })

	if retarget {
		logger.Warn(tghelpers.BuildContext(c), "flow.reply", "reply.retarget",
			slog.Int64("target_id", target),
		)
		return c.Edit(fmt.Sprintf(TextReplyRetargetFmt, target))
	}
	return c.Edit(TextReplyPrompt)
}

// replyText delivers the administrator's text to the stored target.
// Delivery is synchronous because the outcome is reported back.
func (f *Flows) replyText(c tele.Context) error {
	adminID := c.Sender().ID
	sess, _ := f.states.Session(adminID)
	target := sess.Scratch.ReplyTo
	f.states.Finish(adminID)

	if target == 0 {
		// The callback always stores a target before this step runs.
		logger.Warn(tghelpers.BuildContext(c), "flow.reply", "reply.no_target",
			slog.Int64("user_id", adminID),
		)
		return tghelpers.SendText(c, TextReplyNoTarget)
	}

	if err := f.courier.Send(target, notify.AdminReply(c.Text())); err != nil {
		logger.Warn(tghelpers.BuildContext(c), "flow.reply", "reply.deliver_failed",
			slog.Int64("target_id", target),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, fmt.Sprintf(TextReplySendFailedFmt, err))
	}
	return tghelpers.SendText(c, TextReplySent)
}
