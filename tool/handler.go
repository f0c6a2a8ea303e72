package tool

import (
	"context"

	ai "github.com/striderlabs/strider"
)

// Handler executes one tool call and returns the content for the tool
// message. The call carries the tool name, correlation ID, and raw JSON
// arguments; the context carries cancellation and the dispatch timeout.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// TypedHandler is a Handler whose JSON arguments are unmarshaled into T
// before invocation.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)
