package middleware

import (
	"sync"
	"time"

	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	"github.com/EvgenijZaharo/medspravkiBot/core/metrics"
	"log/slog"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	// PerSecond is the sustained token refill rate per user.
	PerSecond float64
	// Burst caps how many updates a user may send back to back.
	Burst int
	// Exclude lists update kinds that bypass limiting ("callback", "message").
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

// idleAfter controls when a user's limiter is dropped from the table.
const idleAfter = 10 * time.Minute

type userLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware returns a middleware enforcing a per-user token
// bucket on inbound updates.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[int64]*userLimiter)
		lastGC   = time.Now()
	)

	limiterFor := func(userID int64) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastGC) > idleAfter {
			for id, ul := range limiters {
				if now.Sub(ul.lastSeen) > idleAfter {
					delete(limiters, id)
				}
			}
			lastGC = now
		}

		ul, ok := limiters[userID]
		if !ok {
			ul = &userLimiter{lim: rate.NewLimiter(rate.Limit(opts.PerSecond), opts.Burst)}
			limiters[userID] = ul
		}
		ul.lastSeen = now
		return ul.lim
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.PerSecond <= 0 {
				return next(c)
			}

			// Determine update kind and apply configured exclusions
			upd := c.Update()
			kind := "other"
			switch {
			case upd.Callback != nil:
				kind = "callback"
			case upd.Message != nil:
				kind = "message"
			}
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}

			if !limiterFor(user.ID).Allow() {
				metrics.RateLimitedTotal.Inc()
				attrs := []slog.Attr{
					slog.String("event", "tg.rate_limit"),
					slog.Int64("user_id", user.ID),
				}
				if chat := c.Chat(); chat != nil {
					attrs = append(attrs, slog.Int64("chat_id", chat.ID))
				}
				logger.TG.LogAttrs(logger.Background(), slog.LevelWarn, "rate limit", attrs...)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
