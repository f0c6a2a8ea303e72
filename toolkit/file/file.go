// Package file provides filesystem tools: listing, reading, writing, and
// removing files and folders, confined to a configurable base directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit"
)

// Toolkit holds the filesystem tools. All paths in tool arguments are
// resolved relative to the base directory and may not escape it.
type Toolkit struct {
	base string
}

// New creates a filesystem toolkit rooted at the current directory.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{base: "."}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Option configures the toolkit.
type Option func(*Toolkit)

// WithBasePath confines all file operations to the given directory.
func WithBasePath(path string) Option {
	return func(t *Toolkit) {
		t.base = path
	}
}

// Registrations returns the toolkit's tools for bulk registration.
func (t *Toolkit) Registrations() []tool.Registration {
	return []tool.Registration{
		tool.FuncR("list_directory_files",
			"List the files and folders in a directory. Folder names end with a slash.",
			"json object", t.listDirectoryFiles),
		tool.FuncR("read_file",
			"Read the content of a text file.",
			"json object", t.readFile),
		tool.FuncR("write_file",
			"Write content to a file, creating it and any parent folders if needed.",
			"json object", t.writeFile),
		tool.FuncR("create_folder",
			"Create a folder, including any missing parents.",
			"json object", t.createFolder),
		tool.FuncR("remove_file",
			"Remove a single file.",
			"json object", t.removeFile),
		tool.FuncR("remove_folder",
			"Remove a folder and everything inside it.",
			"json object", t.removeFolder),
	}
}

// resolve joins a path against the base directory and rejects escapes.
func (t *Toolkit) resolve(rel string) (string, error) {
	if rel == "" {
		rel = "."
	}

	absBase, err := filepath.Abs(t.base)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(filepath.Join(absBase, rel))
	if err != nil {
		return "", err
	}
	if abs != absBase && !strings.HasPrefix(abs, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes the working directory: %s", rel)
	}
	return abs, nil
}

type pathArgs struct {
	Path string `json:"path" desc:"Path relative to the working directory" required:"true"`
}

type listArgs struct {
	Path string `json:"path" desc:"Directory path relative to the working directory; empty for the root"`
}

type writeArgs struct {
	Path    string `json:"path" desc:"Path relative to the working directory" required:"true"`
	Content string `json:"content" desc:"Content to write" required:"true"`
}

func (t *Toolkit) listDirectoryFiles(ctx context.Context, args listArgs) (string, error) {
	dir, err := t.resolve(args.Path)
	if err != nil {
		return toolkit.Failure(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return toolkit.Failure(err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return toolkit.Success(names)
}

func (t *Toolkit) readFile(ctx context.Context, args pathArgs) (string, error) {
	path, err := t.resolve(args.Path)
	if err != nil {
		return toolkit.Failure(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return toolkit.Failure(err)
	}
	return toolkit.Success(string(data))
}

func (t *Toolkit) writeFile(ctx context.Context, args writeArgs) (string, error) {
	path, err := t.resolve(args.Path)
	if err != nil {
		return toolkit.Failure(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return toolkit.Failure(err)
	}
	if err := os.WriteFile(path, []byte(args.Content), 0o644); err != nil {
		return toolkit.Failure(err)
	}
	return toolkit.Success(fmt.Sprintf("wrote %d bytes to %s", len(args.Content), args.Path))
}

func (t *Toolkit) createFolder(ctx context.Context, args pathArgs) (string, error) {
	path, err := t.resolve(args.Path)
	if err != nil {
		return toolkit.Failure(err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return toolkit.Failure(err)
	}
	return toolkit.Success("created " + args.Path)
}

func (t *Toolkit) removeFile(ctx context.Context, args pathArgs) (string, error) {
	path, err := t.resolve(args.Path)
	if err != nil {
		return toolkit.Failure(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return toolkit.Failure(err)
	}
	if info.IsDir() {
		return toolkit.Failure(fmt.Errorf("%s is a folder, use remove_folder", args.Path))
	}
	if err := os.Remove(path); err != nil {
		return toolkit.Failure(err)
	}
	return toolkit.Success("removed " + args.Path)
}

func (t *Toolkit) removeFolder(ctx context.Context, args pathArgs) (string, error) {
	path, err := t.resolve(args.Path)
	if err != nil {
		return toolkit.Failure(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return toolkit.Failure(err)
	}
	if !info.IsDir() {
		return toolkit.Failure(fmt.Errorf("%s is a file, use remove_file", args.Path))
	}
	if err := os.RemoveAll(path); err != nil {
		return toolkit.Failure(err)
	}
	return toolkit.Success("removed " + args.Path)
}
