package openai

// ChatModel represents an OpenAI chat/completion model.
type ChatModel string

const (
	GPT52    ChatModel = "gpt-5.2"     // Flagship model
	GPT52Pro ChatModel = "gpt-5.2-pro" // Enhanced reasoning

	GPT51     ChatModel = "gpt-5.1"
	GPT51Mini ChatModel = "gpt-5.1-mini"

	GPT4o     ChatModel = "gpt-4o"
	GPT4oMini ChatModel = "gpt-4o-mini"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = GPT51Mini
)

// String returns the model identifier as sent on the wire.
func (m ChatModel) String() string {
	return string(m)
}
