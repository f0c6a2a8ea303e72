package agent

import (
	"encoding/json"
	"strings"
)

// FinishSignal is the structured completion payload the model emits when it
// considers the task done.
type FinishSignal struct {
	Finished bool   `json:"finished"`
	Message  string `json:"message,omitempty"`
}

// ExtractFinishSignal parses assistant content for a completion payload.
// The content may wrap the JSON in a fenced code block. Absent or malformed
// payloads mean "not finished yet"; this function never fails.
func ExtractFinishSignal(content string) FinishSignal {
	text := stripFences(content)
	if text == "" {
		return FinishSignal{}
	}

	var sig FinishSignal
	if err := json.Unmarshal([]byte(text), &sig); err != nil {
		return FinishSignal{}
	}
	return sig
}

// stripFences removes an optional markdown code fence (``` or ```json)
// wrapping the content.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, including any language tag.
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return ""
	}
	s = strings.TrimSpace(s[nl+1:])
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
