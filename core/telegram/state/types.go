package state

import tele "gopkg.in/telebot.v4"

// Flow identifies one of the bot's conversations.
type Flow string

const (
	// FlowNone means the user has no active conversation.
	FlowNone Flow = ""
	// FlowContact is the "contact us" conversation.
	FlowContact Flow = "contact"
	// FlowHelp is the certificate help request conversation.
	FlowHelp Flow = "help"
	// FlowAdminReply is the administrator's reply conversation.
	FlowAdminReply Flow = "admin_reply"
)

// Step identifies the current position inside a flow. Step names are
// prefixed with their flow, so they are unique across the bot.
type Step string

const (
	// StepNone means no step is active.
	StepNone Step = ""
	// StepContactMessage awaits the user's free-form message.
	StepContactMessage Step = "contact.awaiting_message"
	// StepHelpName awaits the user's name.
	StepHelpName Step = "help.awaiting_name"
	// StepHelpPhone awaits the user's phone number.
	StepHelpPhone Step = "help.awaiting_phone"
	// StepHelpText awaits the description of the needed certificate.
	StepHelpText Step = "help.awaiting_text"
	// StepReplyText awaits the administrator's reply text.
	StepReplyText Step = "reply.awaiting_text"
)

// Scratch holds the fields collected across a flow's steps. It is valid
// only while a flow is active and is zeroed on finish or cancel.
type Scratch struct {
	Name    string
	Phone   string
	ReplyTo int64
}

// Session is the conversation state of a single user.
type Session struct {
	Flow    Flow
	Step    Step
	Scratch Scratch
}

// Manager orchestrates user sessions and flow transitions.
type Manager interface {
	// Begin starts a flow for the user, replacing any previous session.
	Begin(userID int64, flow Flow, step Step)
	// Advance moves the user's session to the given step of the active flow.
	Advance(userID int64, step Step)
	// Update mutates the scratch of an active session in place.
	Update(userID int64, fn func(*Scratch))
	// Finish terminates the active flow and discards the scratch.
	Finish(userID int64)

	// Session returns a copy of the user's session, if one is active.
	Session(userID int64) (Session, bool)
	// Active returns the user's active flow, FlowNone if idle.
	Active(userID int64) Flow
	// InProgress reports whether the user currently has an active flow.
	InProgress(userID int64) bool

	// Handle registers the handler invoked when a user in the given step
	// sends a message.
	Handle(step Step, h tele.HandlerFunc)
	// Dispatch routes the update to the handler of the sender's current step.
	Dispatch(c tele.Context) error
}
