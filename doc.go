// Package strider is a toolkit for building autonomous tool-calling agents
// on top of LLM chat backends.
//
// The root package holds the shared value types: conversation messages, tool
// definitions, provider options, and categorized errors. Behavior lives in
// subpackages:
//
//   - tool: tool registry, typed handlers, schema-bound registration
//   - agent: the iterate/run loop that drives generation and tool dispatch
//   - provider/openai, provider/groq, provider/anthropic, provider/google:
//     ChatProvider adapters over the vendor SDKs
//   - toolkit/...: ready-made capability modules (files, code execution,
//     JSON checks, browser automation)
//   - prompt: system prompt templates with {tools} substitution
//   - mcp: expose a tool registry as an MCP server
//
// A minimal agent:
//
//	registry := tool.NewRegistry()
//	tool.MustRegisterAll(registry, file.New().Registrations())
//
//	provider := groq.New(os.Getenv("GROQ_API_KEY"))
//	a := agent.New(provider, registry, agent.WithMaxIterations(25))
//
//	result, err := a.Iterate(ctx, "write unit tests for pkg/parser")
package strider
