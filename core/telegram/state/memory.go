package state

import (
	"sync"

	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	tghelpers "github.com/EvgenijZaharo/medspravkiBot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	handlers map[Step]tele.HandlerFunc
}

// NewMemoryManager constructs an in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
		handlers: make(map[Step]tele.HandlerFunc),
	}
}

// Begin starts a flow for the user, replacing any previous session.
func (m *memoryManager) Begin(userID int64, flow Flow, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &Session{Flow: flow, Step: step}
}

// Advance moves the user's session to the given step of the active flow.
func (m *memoryManager) Advance(userID int64, step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		sess.Step = step
	}
}

// Update mutates the scratch of an active session in place.
func (m *memoryManager) Update(userID int64, fn func(*Scratch)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		fn(&sess.Scratch)
	}
}

// Finish terminates the active flow and discards the scratch.
func (m *memoryManager) Finish(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Session returns a copy of the user's session, if one is active.
func (m *memoryManager) Session(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return *sess, true
	}
	return Session{}, false
}

// Active returns the user's active flow, FlowNone if idle.
func (m *memoryManager) Active(userID int64) Flow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.Flow
	}
	return FlowNone
}

// InProgress reports whether the user currently has an active flow.
func (m *memoryManager) InProgress(userID int64) bool {
	return m.Active(userID) != FlowNone
}

// Handle registers the handler invoked for users in the given step.
func (m *memoryManager) Handle(step Step, h tele.HandlerFunc) {
	if step == StepNone || h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[step] = h
}

// Dispatch routes the update to the handler of the sender's current step.
func (m *memoryManager) Dispatch(c tele.Context) error {
	userID := c.Sender().ID
	sess, ok := m.Session(userID)
	if !ok {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "fsm", "fsm.dispatch",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("flow", string(sess.Flow)),
		slog.String("step", string(sess.Step)),
	)

	m.mu.RLock()
	handler := m.handlers[sess.Step]
	m.mu.RUnlock()
	if handler == nil {
		// A session without a registered step handler is a wiring bug.
		logger.Warn(ctx, "fsm", "fsm.no_handler",
			slog.String("status", "skip"),
			slog.Int64("user_id", userID),
			slog.String("flow", string(sess.Flow)),
			slog.String("step", string(sess.Step)),
		)
		return nil
	}
	return handler(c)
}
