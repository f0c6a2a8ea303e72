package agent

import ai "github.com/striderlabs/strider"

// EventType identifies the kind of event emitted during a loop execution.
type EventType string

const (
	// RunStart fires once before the first round.
	RunStart EventType = "run_start"

	// RoundStart fires before each generation call.
	RoundStart EventType = "round_start"

	// RoundEnd fires after a response has been appended.
	RoundEnd EventType = "round_end"

	// ToolCallStart fires before a tool call is executed.
	ToolCallStart EventType = "tool_call_start"

	// ToolCallResult fires after a tool call produced its result.
	ToolCallResult EventType = "tool_call_result"

	// RunEnd fires once when the loop halts, with the termination reason.
	RunEnd EventType = "run_end"

	// RunError fires when the loop aborts on a backend failure.
	RunError EventType = "run_error"
)

// Event is an observable occurrence during a loop execution.
type Event struct {
	Type        EventType
	Iteration   int
	Response    *ai.Response
	ToolCall    *ai.ToolCall
	ToolResult  *ai.ToolResult
	Termination Termination
	Err         error
}

// emit sends without blocking. A slow or absent consumer drops events
// rather than stalling the loop.
func emit(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}
