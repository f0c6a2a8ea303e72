// Package openai implements ai.ChatProvider on the OpenAI chat completions
// API. The client also serves OpenAI-compatible endpoints (set a base URL);
// the groq package builds on it.
package openai
