// Package bot assembles the relay bot: registry population, routes,
// middleware and the courier lifecycle.
package bot

import (
	"context"
	"log/slog"
	"sync"

	"github.com/EvgenijZaharo/medspravkiBot/bot/flows"
	"github.com/EvgenijZaharo/medspravkiBot/bot/notify"
	"github.com/EvgenijZaharo/medspravkiBot/bot/payload"
	coreconfig "github.com/EvgenijZaharo/medspravkiBot/core/config"
	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	tg "github.com/EvgenijZaharo/medspravkiBot/core/telegram"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/commands"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/router"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// courierHolder defers delivery to the courier installed once the bot is
// built. Flow handlers are wired before the Telegram client exists, so
// they hold this indirection instead of the courier itself.
type courierHolder struct {
	mu    sync.RWMutex
	inner notify.Courier
}

func (h *courierHolder) set(c notify.Courier) {
	h.mu.Lock()
	h.inner = c
	h.mu.Unlock()
}

func (h *courierHolder) get() notify.Courier {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.inner
}

func (h *courierHolder) Send(chatID int64, text string) error {
	if c := h.get(); c != nil {
		return c.Send(chatID, text)
	}
	return errNotReady
}

func (h *courierHolder) Dispatch(c tele.Context, chatID int64, text string, markup *tele.ReplyMarkup) {
	if inner := h.get(); inner != nil {
		inner.Dispatch(c, chatID, text, markup)
		return
	}
	logger.Warn(logger.Background(), "notify", "notify.not_ready",
		slog.Int64("target_id", chatID),
	)
}

var errNotReady = notReadyError{}

type notReadyError struct{}

func (notReadyError) Error() string { return "bot: courier not ready" }

// Run builds the bot from configuration and blocks until ctx is done.
func Run(ctx context.Context, cfg *coreconfig.Config) error {
	states := state.NewMemoryManager()
	holder := &courierHolder{}
	fl := flows.New(states, holder, cfg.Telegram.AdminID)

	reg := tg.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     fl.Start,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/contact", commands.Command{
		Handler:     fl.ContactStart,
		Description: "Связаться с нами",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     fl.Cancel,
		Description: "Отменить текущий диалог",
	})
	reg.RegisterText(flows.MenuContact, fl.ContactStart)
	reg.RegisterText(flows.MenuHelp, fl.HelpStart)
	if err := reg.RegisterCallback(payload.ReplyKey, fl.ReplyCallback); err != nil {
		return err
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(states, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			holder.set(notify.NewTelebot(rt.Bot, rt.Dispatcher))
			return nil
		},
	})
}
