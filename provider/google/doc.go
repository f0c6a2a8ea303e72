// Package google implements ai.ChatProvider on the Google GenAI SDK
// (Gemini API backend).
//
// Gemini has no native tool-call IDs, so the client synthesizes stable IDs
// from the part index and function name and maps them back to function
// names when replaying tool results.
package google
