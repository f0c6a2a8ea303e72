package agent

import (
	"slices"

	ai "github.com/striderlabs/strider"
)

// State is the mutable record of one loop execution: the ordered message
// history, the finished flag, and the iteration counter. A State is owned
// by exactly one loop execution and is never shared across agents.
type State struct {
	// Messages is the conversation history in insertion order.
	// History is append-only; messages are never reordered or mutated.
	Messages []ai.Message

	// Finished is set when the model's finish signal fires.
	Finished bool

	// Iteration counts completed generate/dispatch rounds.
	Iteration int
}

// NewState creates a State seeded with the given messages.
func NewState(messages ...ai.Message) State {
	return State{Messages: messages}
}

// Append adds messages to the end of the history.
func (s *State) Append(messages ...ai.Message) {
	s.Messages = append(s.Messages, messages...)
}

// Clone returns a deep-enough copy: the message slice is copied so appends
// on the clone never alias the original history.
func (s State) Clone() State {
	s.Messages = slices.Clone(s.Messages)
	return s
}

// LastMessage returns the most recent message, if any.
func (s State) LastMessage() (ai.Message, bool) {
	if len(s.Messages) == 0 {
		return ai.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
