package anthropic

// ChatModel represents an Anthropic Claude chat model.
type ChatModel string

const (
	ClaudeOpus45   ChatModel = "claude-opus-4-5"   // Alias - auto-updates
	ClaudeSonnet45 ChatModel = "claude-sonnet-4-5" // Alias - auto-updates
	ClaudeHaiku45  ChatModel = "claude-haiku-4-5"  // Alias - auto-updates

	// Pinned versions for production stability.
	ClaudeOpus45_20251101   ChatModel = "claude-opus-4-5-20251101"
	ClaudeSonnet45_20250929 ChatModel = "claude-sonnet-4-5-20250929"
	ClaudeHaiku45_20251001  ChatModel = "claude-haiku-4-5-20251001"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = ClaudeSonnet45
)

// String returns the model identifier as sent on the wire.
func (m ChatModel) String() string {
	return string(m)
}
