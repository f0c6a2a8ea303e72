package strider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor(t *testing.T) {
	type args struct {
		Query  string   `json:"query" desc:"Search query" required:"true"`
		Limit  int      `json:"limit" desc:"Max results"`
		Mode   string   `json:"mode" enum:"text,html"`
		Tags   []string `json:"tags"`
		Strict bool     `json:"strict"`
	}

	raw, err := SchemaFor[args]()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	query := props["query"].(map[string]any)
	assert.Equal(t, "string", query["type"])
	assert.Equal(t, "Search query", query["description"])

	limit := props["limit"].(map[string]any)
	assert.Equal(t, "integer", limit["type"])

	mode := props["mode"].(map[string]any)
	assert.Equal(t, []any{"text", "html"}, mode["enum"])

	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, map[string]any{"type": "string"}, tags["items"])

	strict := props["strict"].(map[string]any)
	assert.Equal(t, "boolean", strict["type"])

	assert.Equal(t, []any{"query"}, schema["required"])
}

func TestSchemaForNested(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	type outer struct {
		Inner inner          `json:"inner"`
		Meta  map[string]any `json:"meta"`
	}

	raw, err := SchemaFor[outer]()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	props := schema["properties"].(map[string]any)
	nested := props["inner"].(map[string]any)
	assert.Equal(t, "object", nested["type"])

	nestedProps := nested["properties"].(map[string]any)
	assert.Contains(t, nestedProps, "name")

	meta := props["meta"].(map[string]any)
	assert.Equal(t, "object", meta["type"])
}

func TestSchemaForNonStruct(t *testing.T) {
	_, err := SchemaFor[string]()
	assert.Error(t, err)
}

func TestSchemaForSkipsUnexportedAndIgnored(t *testing.T) {
	type args struct {
		Public  string `json:"public"`
		Ignored string `json:"-"`
		hidden  string //nolint:unused
	}

	raw, err := SchemaFor[args]()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	props := schema["properties"].(map[string]any)
	assert.Len(t, props, 1)
	assert.Contains(t, props, "public")
}
