package agent

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/striderlabs/strider"
)

// dispatch executes every tool call from one assistant turn and returns one
// result per call, in request order. Execution may be concurrent, but the
// result slice always pairs results[i] with calls[i] since backends require
// strict request/response ordering.
func (a *Agent) dispatch(ctx context.Context, calls []ai.ToolCall, o *Options) []ai.ToolResult {
	results := make([]ai.ToolResult, len(calls))

	if o.ParallelToolCalls && len(calls) > 1 {
		var wg sync.WaitGroup
		for i, call := range calls {
			wg.Add(1)
			go func(idx int, tc ai.ToolCall) {
				defer wg.Done()
				results[idx] = a.executeCall(ctx, tc, o)
			}(i, call)
		}
		wg.Wait()
		return results
	}

	for i, call := range calls {
		results[i] = a.executeCall(ctx, call, o)
	}
	return results
}

// executeCall runs one tool call and always produces a result correlated by
// the call ID. Unknown tools, argument failures, handler errors, and handler
// panics all become error-flagged results; nothing here aborts the loop.
func (a *Agent) executeCall(ctx context.Context, tc ai.ToolCall, o *Options) (result ai.ToolResult) {
	emit(o.Events, Event{Type: ToolCallStart, ToolCall: &tc})

	defer func() {
		if r := recover(); r != nil {
			result = ai.ToolResult{
				ToolCallID: tc.ID,
				Content:    fmt.Sprintf("tool %s panicked: %v", tc.Name, r),
				IsError:    true,
			}
		}
		emit(o.Events, Event{Type: ToolCallResult, ToolCall: &tc, ToolResult: &result})
	}()

	execCtx := ctx
	if o.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, o.HandlerTimeout)
		defer cancel()
	}

	res, err := a.registry.Execute(execCtx, tc)
	if err != nil {
		// Tool not found or other registry-level failure.
		return ai.ToolResult{
			ToolCallID: tc.ID,
			Content:    err.Error(),
			IsError:    true,
		}
	}
	return res
}
