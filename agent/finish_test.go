package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFinishSignal(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    FinishSignal
	}{
		{
			name:    "bare json",
			content: `{"finished": true, "message": "ok"}`,
			want:    FinishSignal{Finished: true, Message: "ok"},
		},
		{
			name:    "fenced json",
			content: "```json\n{\"finished\": true, \"message\": \"ok\"}\n```",
			want:    FinishSignal{Finished: true, Message: "ok"},
		},
		{
			name:    "fence without language tag",
			content: "```\n{\"finished\": true}\n```",
			want:    FinishSignal{Finished: true},
		},
		{
			name:    "surrounding whitespace",
			content: "  \n```json\n{\"finished\": true}\n```\n  ",
			want:    FinishSignal{Finished: true},
		},
		{
			name:    "finished false",
			content: `{"finished": false, "message": "more to do"}`,
			want:    FinishSignal{Finished: false, Message: "more to do"},
		},
		{
			name:    "plain prose",
			content: "I will now read the file.",
			want:    FinishSignal{},
		},
		{
			name:    "malformed json",
			content: `{"finished": tru`,
			want:    FinishSignal{},
		},
		{
			name:    "empty content",
			content: "",
			want:    FinishSignal{},
		},
		{
			name:    "fence with no closing line",
			content: "```json",
			want:    FinishSignal{},
		},
		{
			name:    "unrelated json",
			content: `{"status": "done"}`,
			want:    FinishSignal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFinishSignal(tt.content))
		})
	}
}
