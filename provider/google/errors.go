package google

import (
	"errors"

	"google.golang.org/genai"

	ai "github.com/striderlabs/strider"
)

// wrapError translates a Google GenAI error into a categorized error.
// The SDK's APIError does not expose response headers, so no Retry-After
// delay is available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Not an API error; network errors are handled by heuristics.
		return err
	}

	code := apiErr.Code
	msg := err.Error()

	switch {
	case code == 429 || (code >= 500 && code < 600):
		return ai.NewTransientError(msg, code, err)
	case code == 401 || code == 403:
		return ai.NewPermanentError(msg, code, err)
	case code == 400 || code == 404 || code == 422:
		return ai.NewUserInputError(msg, code, err)
	default:
		return ai.NewPermanentError(msg, code, err)
	}
}
