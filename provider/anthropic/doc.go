// Package anthropic implements ai.ChatProvider on the Anthropic Messages API.
//
// System messages are lifted into the request's system blocks, tool results
// travel as user messages with tool_result blocks, and SDK errors are
// translated into categorized errors.
package anthropic
