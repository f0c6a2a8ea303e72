// Package code provides tools that execute Python code in a subprocess:
// running a script and running a pytest suite. Output is captured and
// returned in-band so the model can inspect failures.
package code

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit"
)

// Toolkit holds the code-execution tools.
type Toolkit struct {
	python string
	dir    string
}

// New creates a code toolkit using "python3" in the current directory.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{python: "python3"}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Option configures the toolkit.
type Option func(*Toolkit)

// WithPython sets the Python interpreter binary.
func WithPython(binary string) Option {
	return func(t *Toolkit) {
		t.python = binary
	}
}

// WithDir sets the working directory for subprocesses.
func WithDir(dir string) Option {
	return func(t *Toolkit) {
		t.dir = dir
	}
}

// Registrations returns the toolkit's tools for bulk registration.
func (t *Toolkit) Registrations() []tool.Registration {
	return []tool.Registration{
		tool.FuncR("run_python_file",
			"Run a Python file and capture its output.",
			"json object", t.runPythonFile),
		tool.FuncR("run_pytest_tests",
			"Run pytest on a file or directory and capture the report.",
			"json object", t.runPytestTests),
	}
}

type runArgs struct {
	Path string   `json:"path" desc:"Path of the Python file to run" required:"true"`
	Args []string `json:"args" desc:"Extra command-line arguments"`
}

type pytestArgs struct {
	Path string `json:"path" desc:"File or directory to test; empty runs the whole suite"`
}

// runOutput is the result payload of a subprocess run. A non-zero exit
// code is data, not a tool failure.
type runOutput struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

func (t *Toolkit) runPythonFile(ctx context.Context, args runArgs) (string, error) {
	argv := append([]string{args.Path}, args.Args...)
	return t.run(ctx, argv)
}

func (t *Toolkit) runPytestTests(ctx context.Context, args pytestArgs) (string, error) {
	argv := []string{"-m", "pytest", "-q"}
	if strings.TrimSpace(args.Path) != "" {
		argv = append(argv, args.Path)
	}
	return t.run(ctx, argv)
}

func (t *Toolkit) run(ctx context.Context, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, t.python, argv...)
	cmd.Dir = t.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := runOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return toolkit.Success(out)
		}
		// The process never ran (binary missing, context cancelled).
		return toolkit.Failure(err)
	}
	return toolkit.Success(out)
}
