package agent

import (
	"time"

	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/internal/retry"
	"github.com/striderlabs/strider/prompt"
)

// DefaultSystemTemplate is the system prompt used when no template is
// supplied. The {tools} placeholder is replaced with the registry's
// human-readable capability listing.
const DefaultSystemTemplate prompt.Template = `You are an autonomous agent that solves tasks by calling tools.

You have access to the following tools:
{tools}

Work step by step. Call tools whenever you need to inspect or change the
environment, and check their results before moving on. When the task is
complete, reply with exactly one JSON object:

{"finished": true, "message": "<short summary of what was done>"}

Do not claim completion without verifying the outcome.`

// DefaultUserTemplate is the user prompt used when no template is supplied.
const DefaultUserTemplate prompt.Template = `Your task:
{task}`

// Options contains configuration for agent execution.
type Options struct {
	// MaxIterations limits the number of generate/dispatch rounds.
	// With 0 the loop performs no rounds and the initial state is
	// returned unmodified. Default is 10.
	MaxIterations int

	// Timeout sets a deadline for the entire loop execution.
	// A value of 0 means no timeout (context deadline applies).
	Timeout time.Duration

	// HandlerTimeout sets the timeout for each individual tool handler.
	// A value of 0 means no per-handler timeout. Default is 30 seconds.
	HandlerTimeout time.Duration

	// ParallelToolCalls enables concurrent execution of the tool calls
	// requested in one assistant turn. Results are appended in request
	// order regardless. Default is true.
	ParallelToolCalls bool

	// History shapes the view of the conversation replayed to the model.
	// Default is KeepAll.
	History HistoryPolicy

	// Retry configures retries of the generation call on transient
	// backend errors. Default is retry.Disabled (single attempt).
	Retry retry.Config

	// Events receives loop events if set. Sends never block; a slow
	// consumer drops events.
	Events chan<- Event

	// SystemTemplate and UserTemplate seed the conversation. Both may
	// reference {tools} and {task}.
	SystemTemplate prompt.Template
	UserTemplate   prompt.Template

	// ChatOptions are passed through to the underlying ChatProvider.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxIterations sets the round budget. With 0 the loop performs no
// rounds. Default is 10.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithTimeout sets a deadline for the entire loop execution.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.Timeout = d
	}
}

// WithHandlerTimeout sets the timeout for each individual tool handler.
// Default is 30 seconds. Set to 0 for no per-handler timeout.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithParallelToolCalls enables or disables concurrent tool execution.
// Default is true.
func WithParallelToolCalls(enabled bool) Option {
	return func(o *Options) {
		o.ParallelToolCalls = enabled
	}
}

// WithHistory sets the history policy. Use Scratchpad to bound context
// growth on long tasks.
func WithHistory(p HistoryPolicy) Option {
	return func(o *Options) {
		o.History = p
	}
}

// WithRetry enables retries of the generation call on transient errors.
func WithRetry(cfg retry.Config) Option {
	return func(o *Options) {
		o.Retry = cfg
	}
}

// WithEvents sets the channel that receives loop events.
func WithEvents(ch chan<- Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// WithSystemTemplate replaces the default system prompt template.
func WithSystemTemplate(t prompt.Template) Option {
	return func(o *Options) {
		o.SystemTemplate = t
	}
}

// WithUserTemplate replaces the default user prompt template.
func WithUserTemplate(t prompt.Template) Option {
	return func(o *Options) {
		o.UserTemplate = t
	}
}

// WithChatOptions passes options through to the ChatProvider.
// These options are applied to every chat call made by the agent.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for chat calls.
func WithModel(model string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithModel(model))
	}
}

// WithMaxTokens is a convenience option to set max tokens for chat calls.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithMaxTokens(n))
	}
}

// WithTemperature is a convenience option to set temperature for chat calls.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithTemperature(t))
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxIterations:     10,
		HandlerTimeout:    30 * time.Second,
		ParallelToolCalls: true,
		History:           KeepAll{},
		Retry:             retry.Disabled(),
		SystemTemplate:    DefaultSystemTemplate,
		UserTemplate:      DefaultUserTemplate,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
