// Package jsonkit provides structured-data checking tools.
package jsonkit

import (
	"context"
	"encoding/json"

	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit"
)

// Registrations returns the toolkit's tools for bulk registration.
func Registrations() []tool.Registration {
	return []tool.Registration{
		tool.FuncR("json_is_valid",
			"Check whether a string is valid JSON.",
			"json object", jsonIsValid),
	}
}

type validArgs struct {
	Text string `json:"text" desc:"The string to validate" required:"true"`
}

func jsonIsValid(ctx context.Context, args validArgs) (string, error) {
	return toolkit.Success(json.Valid([]byte(args.Text)))
}
