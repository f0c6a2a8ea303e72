package agent

import (
	"context"
	"errors"

	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/internal/retry"
	"github.com/striderlabs/strider/tool"
)

// Termination is the reason the loop halted. Callers must be able to tell
// normal completion apart from an exhausted round budget, so the loop
// outcome is always tagged.
type Termination string

const (
	// TerminationFinished means the model's finish signal fired.
	TerminationFinished Termination = "finished"

	// TerminationExhausted means the iteration budget was spent before
	// the finish signal fired. This is a valid end state, not an error.
	TerminationExhausted Termination = "exhausted"

	// TerminationCancelled means the context was cancelled or timed out.
	TerminationCancelled Termination = "cancelled"

	// TerminationError means a backend transport failure aborted the loop.
	TerminationError Termination = "error"
)

// Result is the outcome of a full loop execution.
type Result struct {
	// State is the final conversation state.
	State State

	// Termination tags how the loop ended.
	Termination Termination

	// LastResponse is the most recent provider response, if any.
	LastResponse *ai.Response

	// TotalUsage accumulates token usage across all rounds.
	TotalUsage ai.Usage

	// Err is set when Termination is TerminationError or TerminationCancelled.
	Err error
}

// Agent orchestrates autonomous tool-calling conversations against a single
// provider and registry. Options given to New apply to every execution and
// can be overridden per call.
type Agent struct {
	provider ai.ChatProvider
	registry *tool.Registry
	base     []Option
}

// New creates an Agent with the given chat provider and tool registry.
func New(provider ai.ChatProvider, registry *tool.Registry, opts ...Option) *Agent {
	return &Agent{
		provider: provider,
		registry: registry,
		base:     opts,
	}
}

func (a *Agent) options(opts []Option) *Options {
	merged := make([]Option, 0, len(a.base)+len(opts))
	merged = append(merged, a.base...)
	merged = append(merged, opts...)
	return ApplyOptions(merged...)
}

// StartPoint seeds the conversation state for a task: a system message with
// the capability listing substituted in, followed by the user task message.
func (a *Agent) StartPoint(task string, opts ...Option) State {
	o := a.options(opts)
	vars := map[string]string{
		"tools": a.registry.HumanText(),
		"task":  task,
	}
	return NewState(
		ai.NewSystemMessage(o.SystemTemplate.Render(vars)),
		ai.NewUserMessage(o.UserTemplate.Render(vars)),
	)
}

// Run executes exactly one round: generate, append the assistant message,
// evaluate the finish signal, dispatch any requested tool calls, and append
// their results. It mutates nothing outside the returned state except the
// side effects of invoked tools.
func (a *Agent) Run(ctx context.Context, state State, opts ...Option) (State, error) {
	o := a.options(opts)
	next, _, err := a.round(ctx, state, o)
	return next, err
}

// Iterate drives StartPoint and then repeated rounds until the model
// signals completion or the round budget is exhausted. The returned error
// is non-nil only for backend failures and cancellation; budget exhaustion
// is reported through Result.Termination.
func (a *Agent) Iterate(ctx context.Context, task string, opts ...Option) (*Result, error) {
	o := a.options(opts)

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	state := a.StartPoint(task, opts...)
	result := &Result{}

	emit(o.Events, Event{Type: RunStart})

	for !state.Finished && state.Iteration < o.MaxIterations {
		if err := ctx.Err(); err != nil {
			return a.abort(result, state, o, err)
		}

		emit(o.Events, Event{Type: RoundStart, Iteration: state.Iteration + 1})

		next, response, err := a.round(ctx, state, o)
		if err != nil {
			return a.abort(result, state, o, err)
		}

		state = next
		result.LastResponse = response
		result.TotalUsage.InputTokens += response.Usage.InputTokens
		result.TotalUsage.OutputTokens += response.Usage.OutputTokens

		emit(o.Events, Event{Type: RoundEnd, Iteration: state.Iteration, Response: response})
	}

	result.State = state
	if state.Finished {
		result.Termination = TerminationFinished
	} else {
		result.Termination = TerminationExhausted
	}

	emit(o.Events, Event{Type: RunEnd, Iteration: state.Iteration, Termination: result.Termination})
	return result, nil
}

func (a *Agent) abort(result *Result, state State, o *Options, err error) (*Result, error) {
	result.State = state
	result.Err = err
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		result.Termination = TerminationCancelled
	} else {
		result.Termination = TerminationError
	}

	emit(o.Events, Event{Type: RunError, Iteration: state.Iteration, Err: err})
	emit(o.Events, Event{Type: RunEnd, Iteration: state.Iteration, Termination: result.Termination})
	return result, err
}

// round performs one generate/dispatch cycle and returns the updated state.
// The input state's history is cloned before any append, so the caller's
// slice is never aliased.
func (a *Agent) round(ctx context.Context, state State, o *Options) (State, *ai.Response, error) {
	state = state.Clone()

	view := o.History.Compact(state.Messages)
	chatOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, o.ChatOptions...)

	response, err := retry.Do(ctx, o.Retry, func() (*ai.Response, error) {
		return a.provider.Chat(ctx, view, chatOpts...)
	})
	if err != nil {
		return state, nil, err
	}

	state.Append(ai.Message{
		ID:        ai.GenerateMessageID(),
		Role:      ai.RoleAssistant,
		Content:   response.Content,
		ToolCalls: response.ToolCalls,
	})
	state.Iteration++

	// A fired finish signal halts the round before any tool dispatch.
	if sig := ExtractFinishSignal(response.Content); sig.Finished {
		state.Finished = true
		return state, response, nil
	}

	if len(response.ToolCalls) > 0 {
		results := a.dispatch(ctx, response.ToolCalls, o)
		state.Append(ai.NewToolResultMessage(results...))
	}

	return state, response, nil
}
