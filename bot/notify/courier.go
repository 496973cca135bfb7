// Package notify delivers messages outside the current conversation:
// admin notifications for new requests and the administrator's replies
// back to users.
package notify

import (
	"errors"
	"log/slog"

	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	"github.com/EvgenijZaharo/medspravkiBot/core/metrics"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// Courier sends messages to chats other than the one being handled.
type Courier interface {
	// Send delivers text to the chat synchronously and reports the result.
	Send(chatID int64, text string) error
	// Dispatch queues text with optional markup for asynchronous delivery.
	// Delivery is best effort: failures are logged and counted, not returned.
	Dispatch(c tele.Context, chatID int64, text string, markup *tele.ReplyMarkup)
}

type telebotCourier struct {
	bot  *tele.Bot
	disp *sender.Dispatcher
}

// NewTelebot returns a Courier backed by the given bot. disp may be nil,
// in which case Dispatch degrades to an inline send.
func NewTelebot(bot *tele.Bot, disp *sender.Dispatcher) Courier {
	return &telebotCourier{bot: bot, disp: disp}
}

func (t *telebotCourier) deliver(chatID int64, text string, markup *tele.ReplyMarkup) error {
	var err error
	if markup != nil {
		_, err = t.bot.Send(tele.ChatID(chatID), text, markup)
	} else {
		_, err = t.bot.Send(tele.ChatID(chatID), text)
	}
	if err == nil {
		metrics.SendsTotal.Inc()
	}
	return err
}

func (t *telebotCourier) Send(chatID int64, text string) error {
	err := t.deliver(chatID, text, nil)
	if err != nil {
		metrics.SendFailuresTotal.Inc()
	}
	return err
}

func (t *telebotCourier) Dispatch(c tele.Context, chatID int64, text string, markup *tele.ReplyMarkup) {
	run := func() error {
		return t.deliver(chatID, text, markup)
	}

	ctx := tghelpers.BuildContext(c)
	if t.disp == nil {
		if err := run(); err != nil {
			metrics.SendFailuresTotal.Inc()
			logger.Warn(ctx, "notify", "notify.send_failed",
				slog.Int64("target_id", chatID),
				slog.String("err", err.Error()),
			)
		}
		return
	}

	if err := t.disp.Enqueue(ctx, "notify.send", "sendMessage", run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "notify", "queue.fallback",
				slog.Int64("target_id", chatID),
				slog.String("err", err.Error()),
			)
			if runErr := run(); runErr != nil {
				metrics.SendFailuresTotal.Inc()
				logger.Warn(ctx, "notify", "notify.send_failed",
					slog.Int64("target_id", chatID),
					slog.String("err", runErr.Error()),
				)
			}
		}
	}
}
