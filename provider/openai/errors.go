package openai

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go"

	ai "github.com/striderlabs/strider"
)

// wrapError translates an OpenAI SDK error into a categorized error.
// It extracts status codes and Retry-After headers for retry handling.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Not an API error; network errors are handled by heuristics.
		return err
	}

	code := apiErr.StatusCode
	category := categorizeStatusCode(code)
	retryAfter := parseRetryAfter(apiErr.Response)

	msg := err.Error()
	if retryAfter > 0 {
		return ai.NewTransientErrorWithRetry(msg, code, retryAfter, err)
	}

	switch category {
	case ai.ErrorTransient:
		return ai.NewTransientError(msg, code, err)
	case ai.ErrorPermanent:
		return ai.NewPermanentError(msg, code, err)
	case ai.ErrorUserInput:
		return ai.NewUserInputError(msg, code, err)
	default:
		return err
	}
}

// categorizeStatusCode determines the error category from an HTTP status code.
func categorizeStatusCode(code int) ai.ErrorCategory {
	switch {
	case code == 429:
		return ai.ErrorTransient // Rate limited
	case code >= 500 && code < 600:
		return ai.ErrorTransient // Server error
	case code == 401 || code == 403:
		return ai.ErrorPermanent // Authentication/authorization
	case code == 400 || code == 404 || code == 422:
		return ai.ErrorUserInput // Bad request or not found
	default:
		return ai.ErrorPermanent
	}
}

// parseRetryAfter extracts the Retry-After duration from an HTTP response.
// Returns 0 if the header is not present or cannot be parsed.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// RFC 7231 HTTP-date form
	if t, err := http.ParseTime(header); err == nil {
		delay := time.Until(t)
		if delay > 0 {
			return delay
		}
	}

	return 0
}

// toolUseFailedCode is the error code OpenAI-compatible backends (notably
// Groq) return when the model produced a tool call the backend could not
// parse. The error body carries the raw generation.
const toolUseFailedCode = "tool_use_failed"

// recoverToolUseFailure turns a tool-call rejection into a plain assistant
// response so the loop can continue. Returns false for any other error.
func recoverToolUseFailure(err error) (*ai.Response, bool) {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return nil, false
	}
	if apiErr.Code != toolUseFailedCode && !strings.Contains(apiErr.Error(), toolUseFailedCode) {
		return nil, false
	}

	content := extractFailedGeneration(apiErr.RawJSON())
	if content == "" {
		content = "The backend rejected the attempted tool call: " + apiErr.Message
	}

	return &ai.Response{
		Content:      content,
		FinishReason: toolUseFailedCode,
	}, true
}

// extractFailedGeneration pulls the raw model output out of a
// tool_use_failed error body, if present.
func extractFailedGeneration(raw string) string {
	if raw == "" {
		return ""
	}
	var body struct {
		Error struct {
			FailedGeneration string `json:"failed_generation"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return ""
	}
	return body.Error.FailedGeneration
}
