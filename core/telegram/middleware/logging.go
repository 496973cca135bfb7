package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	"github.com/EvgenijZaharo/medspravkiBot/core/metrics"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// recentUpdates keeps a short-lived set of processed update IDs to avoid double logging.
var (
	recentMu     sync.Mutex
	recentUpdate = make(map[int]time.Time)
	keepFor      = 10 * time.Second
)

func alreadyLogged(updateID int) bool {
	now := time.Now()
	recentMu.Lock()
	defer recentMu.Unlock()
	// GC old entries
	for id, ts := range recentUpdate {
		if now.Sub(ts) > keepFor {
			delete(recentUpdate, id)
		}
	}
	if _, ok := recentUpdate[updateID]; ok {
		return true
	}
	recentUpdate[updateID] = now
	return false
}

// LoggerMiddleware logs a single receipt line per update and sets rid.
// It deduplicates by update_id to prevent double logging when middleware is applied on multiple branches.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		chatID, userID := int64(0), int64(0)
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)
		c.Set("update_start", time.Now())

		ctx := logger.WithRID(logger.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.Component("tg"))
		tghelpers.StoreContext(c, ctx)

		if !alreadyLogged(upd.ID) {
			metrics.UpdatesTotal.Inc()
			if logger.ShouldSampleDebug() {
				logReceipt(ctx, c, rid, chatID, userID)
			}
		}

		return next(c)
	}
}

func logReceipt(ctx context.Context, c tele.Context, rid string, chatID, userID int64) {
	upd := c.Update()
	user := c.Sender()
	chat := c.Chat()

	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("rid", rid),
		slog.Int("update_id", upd.ID),
	}
	if chatID != 0 && chat != nil {
		attrs = append(attrs,
			slog.Int64("chat_id", chatID),
			slog.String("chat_type", string(chat.Type)),
		)
	}
	if userID != 0 && user != nil {
		attrs = append(attrs, slog.Int64("user_id", userID))
		if user.Username != "" {
			attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
		}
		if user.LanguageCode != "" {
			attrs = append(attrs, slog.String("lang", user.LanguageCode))
		}
	}

	switch {
	case upd.Callback != nil:
		if data := strings.TrimSpace(upd.Callback.Data); data != "" {
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(data, 256)))
		}
	case upd.Message != nil:
		if t := c.Text(); t != "" {
			attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
		}
	}
	logger.LogEvent(ctx, logger.Component("tg"), slog.LevelDebug, "update.received", attrs...)
}
