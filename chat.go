package strider

import "context"

// ChatProvider defines the interface for LLM chat backends.
//
// Implementations translate the shared message/tool types into the vendor
// dialect and translate vendor errors into categorized errors. A provider
// must not return an error for ordinary model output (refusals, malformed
// tool arguments); only transport, auth, and server failures are errors.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}

// StreamingChatProvider is implemented by providers that also support
// streaming responses. The synchronous agent loop never requires it.
type StreamingChatProvider interface {
	ChatProvider

	// ChatStream sends a conversation and returns a channel of streaming events.
	// The channel is closed when the stream is complete or an error occurs.
	// Callers should check StreamEvent.Err for any errors.
	ChatStream(ctx context.Context, messages []Message, opts ...Option) (<-chan StreamEvent, error)
}
