package strider

import "encoding/json"

// Tool describes a function the model may call.
type Tool struct {
	// Name uniquely identifies the tool within a registry.
	Name string
	// Description tells the model what the tool does.
	Description string
	// Parameters is the JSON Schema for the tool's arguments.
	Parameters json.RawMessage
	// Returns is a human-readable return-type tag used only in the
	// prompt-facing registry listing, never sent as schema.
	Returns string
}

// ToolCall is the model's request to invoke one tool.
type ToolCall struct {
	// ID correlates this call with its eventual result.
	ID string `json:"id"`
	// Name is the tool to invoke.
	Name string `json:"name"`
	// Arguments is the raw JSON argument payload.
	Arguments string `json:"arguments"`
}

// ToolResult is the outcome of executing one tool call.
type ToolResult struct {
	// ToolCallID echoes the originating ToolCall.ID.
	ToolCallID string `json:"toolCallId"`
	// Content is returned to the model verbatim.
	Content string `json:"content"`
	// IsError flags a failed execution; the content then describes the failure.
	IsError bool `json:"isError,omitempty"`
}

// ToolChoice constrains how the model may use the supplied tools.
type ToolChoice string

const (
	// ToolChoiceAuto lets the model decide (the default).
	ToolChoiceAuto ToolChoice = "auto"
	// ToolChoiceNone forbids tool use for the request.
	ToolChoiceNone ToolChoice = "none"
	// ToolChoiceRequired forces the model to call some tool.
	ToolChoiceRequired ToolChoice = "required"
)

// NewToolResultMessage wraps tool results in a RoleTool message for
// appending to the conversation.
func NewToolResultMessage(results ...ToolResult) Message {
	return Message{
		Role:        RoleTool,
		ToolResults: results,
	}
}
