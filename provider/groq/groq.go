// Package groq implements ai.ChatProvider on Groq's OpenAI-compatible API.
//
// Groq rejects tool calls it cannot parse with a tool_use_failed error, so
// tool-use recovery is enabled by default: the failed generation comes back
// as a plain assistant message and the agent loop keeps going.
package groq

import (
	ai "github.com/striderlabs/strider"
	"github.com/striderlabs/strider/provider/openai"
)

// BaseURL is Groq's OpenAI-compatible endpoint.
const BaseURL = "https://api.groq.com/openai/v1"

// ChatModel represents a Groq-hosted chat model.
type ChatModel string

const (
	Llama33_70B ChatModel = "llama-3.3-70b-versatile"
	Llama31_8B  ChatModel = "llama-3.1-8b-instant"
	GPTOSS120B  ChatModel = "openai/gpt-oss-120b"
	GPTOSS20B   ChatModel = "openai/gpt-oss-20b"
	QwenQwQ32B  ChatModel = "qwen-qwq-32b"
	KimiK2      ChatModel = "moonshotai/kimi-k2-instruct"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = Llama33_70B
)

// Client is an OpenAI-compatible client preconfigured for Groq.
type Client = openai.Client

// New creates a Groq client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	cfg := config{model: DefaultChatModel}
	for _, opt := range opts {
		opt(&cfg)
	}

	return openai.New(apiKey,
		openai.WithBaseURL(BaseURL),
		openai.WithModel(openai.ChatModel(cfg.model)),
		openai.WithToolUseRecovery(true),
	)
}

type config struct {
	model ChatModel
}

// Option configures the Groq client.
type Option func(*config)

// WithModel sets the default model for requests.
func WithModel(model ChatModel) Option {
	return func(c *config) {
		c.model = model
	}
}

var _ ai.ChatProvider = (*Client)(nil)
