package agent

import ai "github.com/striderlabs/strider"

// HistoryPolicy decides which part of the conversation is replayed to the
// model on the next generation call. The stored history itself is never
// modified; policies only shape the view sent to the provider.
type HistoryPolicy interface {
	Compact(messages []ai.Message) []ai.Message
}

// KeepAll replays the full history. This is the default.
type KeepAll struct{}

func (KeepAll) Compact(messages []ai.Message) []ai.Message {
	return messages
}

// Scratchpad bounds context growth by replaying only the system and user
// messages plus the latest assistant turn and everything after it. Earlier
// assistant turns and their tool results are dropped from the model's view.
type Scratchpad struct{}

func (Scratchpad) Compact(messages []ai.Message) []ai.Message {
	lastAssistant := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ai.RoleAssistant {
			lastAssistant = i
			break
		}
	}

	out := make([]ai.Message, 0, len(messages))
	for i, m := range messages {
		switch {
		case m.Role == ai.RoleSystem || m.Role == ai.RoleUser:
			out = append(out, m)
		case lastAssistant >= 0 && i >= lastAssistant:
			out = append(out, m)
		}
	}
	return out
}
