package jsonkit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit"
)

func TestJSONIsValid(t *testing.T) {
	r := tool.NewRegistry()
	tool.MustRegisterAll(r, Registrations())

	tests := []struct {
		text  string
		valid bool
	}{
		{`{"a": 1}`, true},
		{`[1, 2, 3]`, true},
		{`"plain string"`, true},
		{`{"a": }`, false},
		{``, false},
	}

	for _, tt := range tests {
		args, err := json.Marshal(map[string]string{"text": tt.text})
		require.NoError(t, err)

		res, err := r.Execute(context.Background(), ai.ToolCall{
			ID: "c", Name: "json_is_valid", Arguments: string(args),
		})
		require.NoError(t, err)

		var p toolkit.Payload
		require.NoError(t, json.Unmarshal([]byte(res.Content), &p))
		require.True(t, p.Success)
		assert.Equal(t, tt.valid, p.Result, "text: %s", tt.text)
	}
}
