package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/internal/retry"
	"github.com/striderlabs/strider/tool"
)

func fastRetry(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

// mockProvider replays a scripted sequence of responses. After the script
// runs out it keeps returning the last response.
type mockProvider struct {
	mu        sync.Mutex
	responses []*ai.Response
	err       error
	calls     int
	histories [][]ai.Message
}

func (m *mockProvider) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.histories = append(m.histories, append([]ai.Message(nil), messages...))

	if m.err != nil {
		return nil, m.err
	}
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

const finishedContent = "```json\n{\"finished\": true, \"message\": \"ok\"}\n```"

func finishResponse() *ai.Response {
	return &ai.Response{Content: finishedContent, FinishReason: "stop"}
}

func newTestRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r := tool.NewRegistry()
	require.NoError(t, r.Register(
		ai.Tool{Name: "echo", Description: "Echo input"},
		func(ctx context.Context, call ai.ToolCall) (string, error) {
			return "echo:" + call.Arguments, nil
		},
	))
	return r
}

func TestStartPoint(t *testing.T) {
	r := newTestRegistry(t)
	a := New(&mockProvider{}, r)

	state := a.StartPoint("count the files")

	require.Len(t, state.Messages, 2)
	assert.Equal(t, ai.RoleSystem, state.Messages[0].Role)
	assert.Equal(t, ai.RoleUser, state.Messages[1].Role)
	assert.Contains(t, state.Messages[0].Content, "echo() -> string: Echo input")
	assert.Contains(t, state.Messages[1].Content, "count the files")
	assert.False(t, state.Finished)
	assert.Zero(t, state.Iteration)
}

func TestIterateFinishes(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{finishResponse()}}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "do a thing")
	require.NoError(t, err)

	assert.Equal(t, TerminationFinished, result.Termination)
	assert.True(t, result.State.Finished)
	assert.Equal(t, 1, result.State.Iteration)
	assert.Equal(t, 1, p.calls)

	last, ok := result.State.LastMessage()
	require.True(t, ok)
	assert.Equal(t, ai.RoleAssistant, last.Role)
	assert.Equal(t, finishedContent, last.Content)
}

func TestFinishSignalSkipsToolDispatch(t *testing.T) {
	dispatched := false
	r := tool.NewRegistry()
	require.NoError(t, r.Register(ai.Tool{Name: "echo"},
		func(ctx context.Context, call ai.ToolCall) (string, error) {
			dispatched = true
			return "", nil
		},
	))

	// The model claims completion and requests a tool call in the same
	// turn; the finish signal wins and the call is never executed.
	p := &mockProvider{responses: []*ai.Response{{
		Content:   finishedContent,
		ToolCalls: []ai.ToolCall{{ID: "c1", Name: "echo"}},
	}}}
	a := New(p, r)

	result, err := a.Iterate(context.Background(), "task")
	require.NoError(t, err)

	assert.Equal(t, TerminationFinished, result.Termination)
	assert.False(t, dispatched)
	last, _ := result.State.LastMessage()
	assert.Equal(t, ai.RoleAssistant, last.Role)
}

func TestIterateExhaustsBudget(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{{Content: "still working"}}}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task", WithMaxIterations(3))
	require.NoError(t, err)

	assert.Equal(t, TerminationExhausted, result.Termination)
	assert.False(t, result.State.Finished)
	assert.Equal(t, 3, result.State.Iteration)
	assert.Equal(t, 3, p.calls)
}

func TestIterateZeroBudget(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{finishResponse()}}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task", WithMaxIterations(0))
	require.NoError(t, err)

	// No generation rounds at all: just the seeded messages.
	assert.Equal(t, TerminationExhausted, result.Termination)
	assert.False(t, result.State.Finished)
	assert.Zero(t, result.State.Iteration)
	assert.Zero(t, p.calls)
	assert.Len(t, result.State.Messages, 2)
}

func TestToolCallRoundTrip(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{
		{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "echo", Arguments: `{"x":1}`}}},
		finishResponse(),
	}}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, TerminationFinished, result.Termination)

	// system, user, assistant(tool_calls), tool, assistant(finish)
	require.Len(t, result.State.Messages, 5)
	toolMsg := result.State.Messages[3]
	assert.Equal(t, ai.RoleTool, toolMsg.Role)
	require.Len(t, toolMsg.ToolResults, 1)
	assert.Equal(t, "c1", toolMsg.ToolResults[0].ToolCallID)
	assert.Equal(t, `echo:{"x":1}`, toolMsg.ToolResults[0].Content)
	assert.False(t, toolMsg.ToolResults[0].IsError)
}

func TestEveryToolCallAnswered(t *testing.T) {
	calls := []ai.ToolCall{
		{ID: "c1", Name: "echo", Arguments: "a"},
		{ID: "c2", Name: "missing"},
		{ID: "c3", Name: "echo", Arguments: "b"},
	}
	for _, parallel := range []bool{true, false} {
		p := &mockProvider{responses: []*ai.Response{
			{ToolCalls: calls},
			finishResponse(),
		}}
		a := New(p, newTestRegistry(t))

		result, err := a.Iterate(context.Background(), "task", WithParallelToolCalls(parallel))
		require.NoError(t, err)

		toolMsg := result.State.Messages[3]
		require.Len(t, toolMsg.ToolResults, len(calls))
		// Results pair with requests in request order.
		for i, tc := range calls {
			assert.Equal(t, tc.ID, toolMsg.ToolResults[i].ToolCallID)
		}
		assert.True(t, toolMsg.ToolResults[1].IsError)
		assert.Contains(t, toolMsg.ToolResults[1].Content, "missing")
	}
}

func TestUnknownToolContinuesLoop(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{
		{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "foo", Arguments: "{}"}}},
		finishResponse(),
	}}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task")
	require.NoError(t, err)

	assert.Equal(t, TerminationFinished, result.Termination)
	assert.Equal(t, 2, p.calls)

	toolMsg := result.State.Messages[3]
	require.Len(t, toolMsg.ToolResults, 1)
	assert.Equal(t, "c1", toolMsg.ToolResults[0].ToolCallID)
	assert.True(t, toolMsg.ToolResults[0].IsError)

	// The second generation call received the error result, not a hole.
	secondHistory := p.histories[1]
	assert.Equal(t, ai.RoleTool, secondHistory[len(secondHistory)-1].Role)
}

func TestPanickingHandlerDoesNotCrash(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, r.Register(ai.Tool{Name: "boom"},
		func(ctx context.Context, call ai.ToolCall) (string, error) {
			panic("kaboom")
		},
	))

	p := &mockProvider{responses: []*ai.Response{
		{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "boom"}}},
		finishResponse(),
	}}
	a := New(p, r)

	result, err := a.Iterate(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, TerminationFinished, result.Termination)

	toolMsg := result.State.Messages[3]
	require.Len(t, toolMsg.ToolResults, 1)
	assert.True(t, toolMsg.ToolResults[0].IsError)
	assert.Contains(t, toolMsg.ToolResults[0].Content, "kaboom")
}

func TestBackendErrorAborts(t *testing.T) {
	boom := ai.NewPermanentError("invalid api key", 401, nil)
	p := &mockProvider{err: boom}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, TerminationError, result.Termination)
	assert.Equal(t, 1, p.calls)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &mockProvider{err: context.Canceled}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(ctx, "task")
	require.Error(t, err)
	assert.Equal(t, TerminationCancelled, result.Termination)
}

func TestRunDoesNotAliasCallerState(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{{Content: "working"}}}
	a := New(p, newTestRegistry(t))

	initial := a.StartPoint("task")
	snapshot := len(initial.Messages)

	next, err := a.Run(context.Background(), initial)
	require.NoError(t, err)

	assert.Len(t, initial.Messages, snapshot)
	assert.Equal(t, snapshot+1, len(next.Messages))
	assert.Equal(t, 1, next.Iteration)
	assert.Zero(t, initial.Iteration)
}

func TestToolCallIDPairing(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{
		{ToolCalls: []ai.ToolCall{
			{ID: "a", Name: "echo", Arguments: "1"},
			{ID: "b", Name: "echo", Arguments: "2"},
		}},
		finishResponse(),
	}}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task")
	require.NoError(t, err)

	// Every tool result ID matches exactly one preceding tool call, and
	// every tool call is answered before the next generation.
	pending := map[string]bool{}
	for _, m := range result.State.Messages {
		for _, tc := range m.ToolCalls {
			pending[tc.ID] = true
		}
		for _, tr := range m.ToolResults {
			assert.True(t, pending[tr.ToolCallID], "result %q has no matching call", tr.ToolCallID)
			delete(pending, tr.ToolCallID)
		}
	}
	assert.Empty(t, pending)
}

func TestIterateEmitsEvents(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{
		{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "echo"}}},
		finishResponse(),
	}}
	a := New(p, newTestRegistry(t))

	events := make(chan Event, 64)
	_, err := a.Iterate(context.Background(), "task", WithEvents(events))
	require.NoError(t, err)
	close(events)

	var types []EventType
	var ended *Event
	for ev := range events {
		ev := ev
		types = append(types, ev.Type)
		if ev.Type == RunEnd {
			ended = &ev
		}
	}

	assert.Contains(t, types, RunStart)
	assert.Contains(t, types, ToolCallStart)
	assert.Contains(t, types, ToolCallResult)
	require.NotNil(t, ended)
	assert.Equal(t, TerminationFinished, ended.Termination)
}

func TestAgentLevelOptionsApply(t *testing.T) {
	p := &mockProvider{responses: []*ai.Response{{Content: "working"}}}
	a := New(p, newTestRegistry(t), WithMaxIterations(2))

	result, err := a.Iterate(context.Background(), "task")
	require.NoError(t, err)
	assert.Equal(t, 2, result.State.Iteration)

	// Per-call options override construction-time ones.
	result, err = a.Iterate(context.Background(), "task", WithMaxIterations(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.State.Iteration)
}

func TestRetryOnTransientBackendError(t *testing.T) {
	attempts := 0
	p := &flakyProvider{
		fail:     2,
		attempts: &attempts,
	}
	a := New(p, newTestRegistry(t))

	result, err := a.Iterate(context.Background(), "task",
		WithRetry(fastRetry(5)),
	)
	require.NoError(t, err)
	assert.Equal(t, TerminationFinished, result.Termination)
	assert.Equal(t, 3, attempts)
}

// flakyProvider fails the first N calls with a transient error.
type flakyProvider struct {
	fail     int
	attempts *int
}

func (f *flakyProvider) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	*f.attempts++
	if *f.attempts <= f.fail {
		return nil, ai.NewTransientError("overloaded", 503, errors.New("upstream"))
	}
	return finishResponse(), nil
}
