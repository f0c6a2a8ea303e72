package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tmpl := Template("Tools:\n{tools}\n\nTask: {task}")

	got := tmpl.Render(map[string]string{
		"tools": "read_file(path: string) -> string: Read a file.",
		"task":  "summarize the README",
	})

	assert.Equal(t, "Tools:\nread_file(path: string) -> string: Read a file.\n\nTask: summarize the README", got)
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	tmpl := Template(`Reply with {"finished": true} when done. Task: {task}`)

	got := tmpl.Render(map[string]string{"task": "x"})

	// JSON braces in the template text survive substitution.
	assert.Equal(t, `Reply with {"finished": true} when done. Task: x`, got)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk: {task}"), 0o644))

	assert.Equal(t, Template("from disk: {task}"), LoadFile(path, "fallback"))
	assert.Equal(t, Template("fallback"), LoadFile(filepath.Join(dir, "missing.txt"), "fallback"))
}
