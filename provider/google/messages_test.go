package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/genai"

	ai "github.com/striderlabs/strider"
)

func TestFunctionNameFromCallID(t *testing.T) {
	assert.Equal(t, "read_file", functionNameFromCallID("call_0_read_file"))
	assert.Equal(t, "goto_url", functionNameFromCallID("call_12_goto_url"))
	// Foreign ID shapes pass through unchanged.
	assert.Equal(t, "toolu_abc123", functionNameFromCallID("toolu_abc123"))
}

func TestExtractToolCallsSynthesizesIDs(t *testing.T) {
	parts := []*genai.Part{
		{Text: "thinking"},
		{FunctionCall: &genai.FunctionCall{Name: "read_file", Args: map[string]any{"path": "a.txt"}}},
		{FunctionCall: &genai.FunctionCall{Name: "read_file", Args: map[string]any{"path": "b.txt"}}},
	}

	calls := extractToolCalls(parts)
	require.Len(t, calls, 2)
	assert.Equal(t, "call_1_read_file", calls[0].ID)
	assert.Equal(t, "call_2_read_file", calls[1].ID)
	assert.NotEqual(t, calls[0].ID, calls[1].ID)
	assert.JSONEq(t, `{"path":"a.txt"}`, calls[0].Arguments)
}

func TestConvertMessagesRoles(t *testing.T) {
	msgs := []ai.Message{
		ai.NewSystemMessage("be helpful"),
		ai.NewUserMessage("hello"),
		{Role: ai.RoleAssistant, Content: "hi", ToolCalls: []ai.ToolCall{
			{ID: "call_0_ping", Name: "ping", Arguments: "{}"},
		}},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call_0_ping", Content: "pong"}),
	}

	contents := convertMessages(msgs)
	require.Len(t, contents, 4)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "user", contents[1].Role)
	assert.Equal(t, "model", contents[2].Role)
	assert.Equal(t, "user", contents[3].Role)

	require.Len(t, contents[2].Parts, 2)
	assert.Equal(t, "ping", contents[2].Parts[1].FunctionCall.Name)

	fr := contents[3].Parts[0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, "ping", fr.Name)
	// Non-JSON tool output is wrapped for the wire.
	assert.Equal(t, map[string]any{"result": "pong"}, fr.Response)
}

func TestConvertJSONSchema(t *testing.T) {
	schema := convertJSONSchemaToGenaiSchema([]byte(`{
		"type": "object",
		"properties": {
			"path": {"type": "string", "description": "File path"},
			"limit": {"type": "integer"},
			"mode": {"type": "string", "enum": ["r", "w"]}
		},
		"required": ["path"]
	}`))

	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"path"}, schema.Required)
	assert.Equal(t, genai.TypeString, schema.Properties["path"].Type)
	assert.Equal(t, "File path", schema.Properties["path"].Description)
	assert.Equal(t, genai.TypeInteger, schema.Properties["limit"].Type)
	assert.Equal(t, []string{"r", "w"}, schema.Properties["mode"].Enum)

	assert.Nil(t, convertJSONSchemaToGenaiSchema(nil))
	assert.Nil(t, convertJSONSchemaToGenaiSchema([]byte("not json")))
}
