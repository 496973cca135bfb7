// Package state tracks per-user conversation sessions. Each user has at
// most one active flow; a session carries the current step of that flow
// and the scratch fields collected so far. Sessions live in memory only
// and disappear when the flow finishes or is cancelled.
package state
