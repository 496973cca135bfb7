// Package metrics exposes Prometheus counters for the bot and an
// optional HTTP listener serving them on /metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// UpdatesTotal counts inbound Telegram updates received.
	UpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Inbound Telegram updates received.",
	})

	// HandledTotal counts handled updates partitioned by handler and status.
	HandledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_handled_total",
		Help: "Handled updates by handler name and status.",
	}, []string{"handler", "status"})

	// SendsTotal counts successful outbound sends.
	SendsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_sends_total",
		Help: "Outbound messages delivered to the Telegram API.",
	})

	// SendFailuresTotal counts outbound sends that exhausted retries.
	SendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_failures_total",
		Help: "Outbound messages that could not be delivered.",
	})

	// RateLimitedTotal counts updates rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_rate_limited_total",
		Help: "Updates dropped by the per-user rate limiter.",
	})
)

// Server wraps the optional /metrics HTTP listener.
type Server struct {
	srv *http.Server
}

// Serve starts the metrics listener on addr. The returned Server must be
// shut down on exit. Errors other than a clean close are reported via errCh.
func Serve(addr string, errCh chan<- error) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if errCh != nil {
				errCh <- err
			}
		}
	}()
	return &Server{srv: srv}
}

// Shutdown stops the listener, waiting briefly for in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
