// Package toolkit provides shared plumbing for the capability modules
// (file, code, jsonkit, browser): the structured success/error payload
// every tool returns.
//
// Tools report failures in-band so the model can read them and react; a
// toolkit handler returns a non-nil error only when it cannot produce a
// payload at all.
package toolkit

import "encoding/json"

// Payload is the structured envelope toolkit tools return.
type Payload struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success encodes a successful result payload.
func Success(result any) (string, error) {
	b, err := json.Marshal(Payload{Success: true, Result: result})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Failure encodes a failed payload carrying the error text.
func Failure(err error) (string, error) {
	b, merr := json.Marshal(Payload{Success: false, Error: err.Error()})
	if merr != nil {
		return "", merr
	}
	return string(b), nil
}
