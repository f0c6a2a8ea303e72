// Package prompt provides the textual substitution layer for agent templates.
//
// Templates are plain strings with {name} placeholders. Substitution is
// purely textual; the agent injects the tool listing and the task text, and
// any placeholder without a matching variable is left untouched.
package prompt

import (
	"os"
	"strings"
)

// Template is a prompt text with {name} placeholders.
type Template string

// Render substitutes every {name} placeholder with its value from vars.
// Placeholders with no matching variable are left as-is.
func (t Template) Render(vars map[string]string) string {
	out := string(t)
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// LoadFile reads a template from disk. If the file cannot be read, the
// fallback template is returned so callers always have a usable prompt.
func LoadFile(path string, fallback Template) Template {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	return Template(data)
}
