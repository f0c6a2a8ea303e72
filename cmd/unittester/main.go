// Command unittester runs an autonomous QA agent over a working
// directory: it writes pytest unit tests for the named files, runs
// them, and reports the outcome.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/agent"
	"github.com/striderlabs/strider/prompt"
	"github.com/striderlabs/strider/provider/anthropic"
	"github.com/striderlabs/strider/provider/google"
	"github.com/striderlabs/strider/provider/groq"
	"github.com/striderlabs/strider/provider/openai"
	"github.com/striderlabs/strider/session"
	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit/browser"
	"github.com/striderlabs/strider/toolkit/code"
	"github.com/striderlabs/strider/toolkit/file"
	"github.com/striderlabs/strider/toolkit/jsonkit"
)

func main() {
	godotenv.Load()

	var (
		task          = flag.String("task", "", "task for the agent; defaults to writing unit tests for -files")
		files         = flag.String("files", "", "comma-separated files under test")
		base          = flag.String("base", ".", "working directory the file tools are confined to")
		providerName  = flag.String("provider", "groq", "backend: groq, openai, anthropic, google")
		model         = flag.String("model", "", "model name; empty uses the provider default")
		maxIterations = flag.Int("max-iterations", 20, "iteration budget")
		scratchpad    = flag.Bool("scratchpad", false, "keep only the latest round in the model's view")
		withBrowser   = flag.Bool("browser", false, "expose web browsing tools")
		systemFile    = flag.String("system-prompt", "", "file with a custom system template")
		verbose       = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(context.Background(), runConfig{
		task:          *task,
		files:         *files,
		base:          *base,
		provider:      *providerName,
		model:         *model,
		maxIterations: *maxIterations,
		scratchpad:    *scratchpad,
		withBrowser:   *withBrowser,
		systemFile:    *systemFile,
		logger:        logger,
	}); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

type runConfig struct {
	task          string
	files         string
	base          string
	provider      string
	model         string
	maxIterations int
	scratchpad    bool
	withBrowser   bool
	systemFile    string
	logger        *slog.Logger
}

func run(ctx context.Context, cfg runConfig) error {
	provider, err := buildProvider(ctx, cfg.provider)
	if err != nil {
		return err
	}

	registry := tool.NewRegistry()
	tool.MustRegisterAll(registry, file.New(file.WithBasePath(cfg.base)).Registrations())
	tool.MustRegisterAll(registry, code.New(code.WithDir(cfg.base)).Registrations())
	tool.MustRegisterAll(registry, jsonkit.Registrations())

	if cfg.withBrowser {
		mgr := browser.New(browser.WithLogger(cfg.logger))
		defer mgr.Close()
		tool.MustRegisterAll(registry, mgr.Registrations())
	}

	task := cfg.task
	if task == "" {
		if cfg.files == "" {
			return errors.New("either -task or -files is required")
		}
		task = fmt.Sprintf(
			"Write pytest unit tests for these files: %s. Run the tests and report the results. Only create files inside the working directory.",
			strings.TrimSpace(cfg.files))
	}

	opts := []agent.Option{
		agent.WithMaxIterations(cfg.maxIterations),
	}
	if cfg.model != "" {
		opts = append(opts, agent.WithModel(cfg.model))
	}
	if cfg.scratchpad {
		opts = append(opts, agent.WithHistory(agent.Scratchpad{}))
	}
	if cfg.systemFile != "" {
		opts = append(opts, agent.WithSystemTemplate(
			prompt.LoadFile(cfg.systemFile, agent.DefaultSystemTemplate)))
	}

	events := make(chan agent.Event, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			switch ev.Type {
			case agent.ToolCallStart:
				cfg.logger.Info("tool call", "tool", ev.ToolCall.Name, "args", ev.ToolCall.Arguments)
			case agent.ToolCallResult:
				cfg.logger.Info("tool result", "tool", ev.ToolCall.Name, "is_error", ev.ToolResult.IsError)
			case agent.RoundEnd:
				cfg.logger.Debug("round done", "iteration", ev.Iteration)
			}
		}
	}()
	opts = append(opts, agent.WithEvents(events))

	scope := session.Begin(cfg.logger, task)
	a := agent.New(provider, registry, opts...)

	result, err := a.Iterate(ctx, task)
	close(events)
	<-done
	if err != nil {
		scope.End(string(agent.TerminationError), err)
		return err
	}
	scope.End(string(result.Termination), nil)

	fmt.Printf("termination: %s after %d iteration(s)\n", result.Termination, result.State.Iteration)
	fmt.Printf("tokens: %d in / %d out\n", result.TotalUsage.InputTokens, result.TotalUsage.OutputTokens)
	if result.LastResponse != nil {
		if sig := agent.ExtractFinishSignal(result.LastResponse.Content); sig.Finished {
			fmt.Println("report:")
			fmt.Println(sig.Message)
		} else {
			fmt.Println("last response:")
			fmt.Println(result.LastResponse.Content)
		}
	}
	return nil
}

func buildProvider(ctx context.Context, name string) (ai.ChatProvider, error) {
	key := func(env string) (string, error) {
		v := os.Getenv(env)
		if v == "" {
			return "", fmt.Errorf("%s is not set", env)
		}
		return v, nil
	}

	switch ai.Provider(name) {
	case ai.ProviderGroq:
		k, err := key("GROQ_API_KEY")
		if err != nil {
			return nil, err
		}
		return groq.New(k), nil
	case ai.ProviderOpenAI:
		k, err := key("OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		return openai.New(k), nil
	case ai.ProviderAnthropic:
		k, err := key("ANTHROPIC_API_KEY")
		if err != nil {
			return nil, err
		}
		return anthropic.New(k), nil
	case ai.ProviderGoogle:
		k, err := key("GOOGLE_API_KEY")
		if err != nil {
			return nil, err
		}
		return google.New(ctx, k)
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
