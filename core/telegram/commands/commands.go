package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command couples a slash-command handler with its menu metadata.
// Hidden commands are routed but never advertised via setMyCommands.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
}
