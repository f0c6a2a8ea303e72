// Package agent implements the autonomous generate/dispatch loop.
//
// An Agent drives a ChatProvider and a tool.Registry through repeated
// rounds: generate a response, append it to the conversation, execute any
// requested tool calls, append their results, and check for completion.
// The loop halts when the model emits a finish signal or the iteration
// budget is exhausted; the two outcomes are reported distinctly.
package agent
