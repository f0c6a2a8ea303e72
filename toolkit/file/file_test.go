package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit"
)

func newTestRegistry(t *testing.T) (*tool.Registry, string) {
	t.Helper()
	dir := t.TempDir()
	r := tool.NewRegistry()
	tool.MustRegisterAll(r, New(WithBasePath(dir)).Registrations())
	return r, dir
}

func execute(t *testing.T, r *tool.Registry, name, args string) toolkit.Payload {
	t.Helper()
	res, err := r.Execute(context.Background(), ai.ToolCall{ID: "c", Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var p toolkit.Payload
	require.NoError(t, json.Unmarshal([]byte(res.Content), &p))
	return p
}

func TestRegistrationsOrder(t *testing.T) {
	r, _ := newTestRegistry(t)
	assert.Equal(t, []string{
		"list_directory_files", "read_file", "write_file",
		"create_folder", "remove_file", "remove_folder",
	}, r.Names())
}

func TestWriteAndReadFile(t *testing.T) {
	r, dir := newTestRegistry(t)

	p := execute(t, r, "write_file", `{"path":"notes/todo.txt","content":"hello"}`)
	assert.True(t, p.Success)

	data, err := os.ReadFile(filepath.Join(dir, "notes", "todo.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	p = execute(t, r, "read_file", `{"path":"notes/todo.txt"}`)
	assert.True(t, p.Success)
	assert.Equal(t, "hello", p.Result)
}

func TestListDirectoryFiles(t *testing.T) {
	r, dir := newTestRegistry(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	p := execute(t, r, "list_directory_files", `{"path":""}`)
	require.True(t, p.Success)
	assert.ElementsMatch(t, []any{"a.txt", "sub/"}, p.Result)
}

func TestReadMissingFile(t *testing.T) {
	r, _ := newTestRegistry(t)

	p := execute(t, r, "read_file", `{"path":"nope.txt"}`)
	assert.False(t, p.Success)
	assert.NotEmpty(t, p.Error)
}

func TestPathEscapeRejected(t *testing.T) {
	r, _ := newTestRegistry(t)

	p := execute(t, r, "read_file", `{"path":"../../etc/passwd"}`)
	assert.False(t, p.Success)
	assert.Contains(t, p.Error, "escapes")
}

func TestCreateAndRemoveFolder(t *testing.T) {
	r, dir := newTestRegistry(t)

	p := execute(t, r, "create_folder", `{"path":"build/out"}`)
	assert.True(t, p.Success)
	assert.DirExists(t, filepath.Join(dir, "build", "out"))

	p = execute(t, r, "remove_folder", `{"path":"build"}`)
	assert.True(t, p.Success)
	assert.NoDirExists(t, filepath.Join(dir, "build"))
}

func TestRemoveFileChecksKind(t *testing.T) {
	r, dir := newTestRegistry(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644))

	p := execute(t, r, "remove_file", `{"path":"sub"}`)
	assert.False(t, p.Success)
	assert.Contains(t, p.Error, "remove_folder")

	p = execute(t, r, "remove_folder", `{"path":"f.txt"}`)
	assert.False(t, p.Success)
	assert.Contains(t, p.Error, "remove_file")

	p = execute(t, r, "remove_file", `{"path":"f.txt"}`)
	assert.True(t, p.Success)
	assert.NoFileExists(t, filepath.Join(dir, "f.txt"))
}
