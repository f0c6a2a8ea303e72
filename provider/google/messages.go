package google

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	ai "github.com/striderlabs/strider"
)

func convertMessages(messages []ai.Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		role := "user"
		switch msg.Role {
		case ai.RoleAssistant:
			role = "model"
		case ai.RoleSystem, ai.RoleUser, ai.RoleTool:
			// Gemini has no dedicated system or tool role; both travel
			// as user content (tool results as FunctionResponse parts).
			role = "user"
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			var args map[string]any
			json.Unmarshal([]byte(tc.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					Name: tc.Name,
					Args: args,
				},
			})
		}

		for _, tr := range msg.ToolResults {
			var result map[string]any
			if err := json.Unmarshal([]byte(tr.Content), &result); err != nil {
				result = map[string]any{"result": tr.Content}
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     functionNameFromCallID(tr.ToolCallID),
					Response: result,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents
}

// extractToolCalls synthesizes correlation IDs for Gemini function calls,
// which carry only a function name on the wire.
func extractToolCalls(parts []*genai.Part) []ai.ToolCall {
	var calls []ai.ToolCall
	for i, part := range parts {
		if part.FunctionCall != nil {
			args, _ := json.Marshal(part.FunctionCall.Args)
			calls = append(calls, ai.ToolCall{
				ID:        fmt.Sprintf("call_%d_%s", i, part.FunctionCall.Name),
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
		}
	}
	return calls
}

// functionNameFromCallID reverses the call_<index>_<name> scheme used by
// extractToolCalls. Unknown ID shapes pass through unchanged.
func functionNameFromCallID(id string) string {
	if !strings.HasPrefix(id, "call_") {
		return id
	}
	rest := strings.TrimPrefix(id, "call_")
	if _, name, ok := strings.Cut(rest, "_"); ok {
		return name
	}
	return id
}

// BlockedError indicates the request was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked: %s", e.Reason)
}
