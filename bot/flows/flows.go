// Package flows implements the bot's conversations: the contact message,
// the certificate help request, and the administrator's reply. Each flow
// is a linear sequence of steps driven by the session manager.
package flows

import (
	"github.com/EvgenijZaharo/medspravkiBot/bot/notify"
	"github.com/EvgenijZaharo/medspravkiBot/core/telegram/state"
)

// Flows bundles the conversation handlers and their dependencies.
type Flows struct {
	states  state.Manager
	courier notify.Courier
	adminID int64
}

// New wires the flow handlers and registers every step with the manager.
func New(states state.Manager, courier notify.Courier, adminID int64) *Flows {
	f := &Flows{
		states:  states,
		courier: courier,
		adminID: adminID,
	}
	states.Handle(state.StepContactMessage, f.contactMessage)
	states.Handle(state.StepHelpName, f.helpName)
	states.Handle(state.StepHelpPhone, f.helpPhone)
	states.Handle(state.StepHelpText, f.helpText)
	states.Handle(state.StepReplyText, f.replyText)
	return f
}
