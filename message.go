package strider

import "github.com/google/uuid"

// Role identifies who produced a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message is one entry in a conversation. Conversations are append-only;
// a message is never reordered or edited after it is added.
type Message struct {
	// ID optionally identifies the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// ToolCalls holds the tool invocations an assistant message requests.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// ToolResults holds executed tool outputs; set only on RoleTool messages.
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// GenerateMessageID returns a fresh message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// NewSystemMessage builds a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage builds a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Response is a single completed generation from a chat provider. A
// non-empty ToolCalls slice means the model wants tools executed before
// the conversation continues.
type Response struct {
	Content      string     `json:"content,omitempty"`
	FinishReason string     `json:"finishReason,omitempty"`
	Usage        Usage      `json:"usage"`
	ToolCalls    []ToolCall `json:"toolCalls,omitempty"`
}

// Usage counts the tokens a request consumed.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// StreamEvent is one increment of a streaming generation. Done is set on
// the final event, which carries the assembled Response.
type StreamEvent struct {
	Delta    string
	Done     bool
	Response *Response
	Err      error
}
