package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// HumanText renders the registered tools as a newline-joined listing suitable
// for injection into a system prompt, one tool per line:
//
//	read_file(path: string) -> string: Read the content of a file.
//
// The listing follows registration order and is derived from the current
// registry contents on every call, so it always reflects the live state.
func (r *Registry) HumanText() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	for i, name := range r.order {
		if i > 0 {
			b.WriteByte('\n')
		}
		rt := r.tools[name]
		returns := rt.tool.Returns
		if returns == "" {
			returns = "string"
		}
		fmt.Fprintf(&b, "%s(%s) -> %s: %s",
			name, formatParams(rt.tool.Parameters), returns, rt.tool.Description)
	}
	return b.String()
}

// formatParams renders a JSON-schema parameters object as "name: type, ...".
// Properties are listed in document order, which SchemaFor emits sorted by
// name, keeping the output stable across calls.
func formatParams(schema json.RawMessage) string {
	if len(schema) == 0 {
		return ""
	}

	params := scanProperties(schema)
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.name + ": " + p.typeTag
	}
	return strings.Join(parts, ", ")
}

type paramInfo struct {
	name    string
	typeTag string
}

// scanProperties walks the schema's top-level "properties" object with a
// token decoder so the declared property order is preserved.
func scanProperties(schema json.RawMessage) []paramInfo {
	var doc struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(schema, &doc); err != nil || len(doc.Properties) == 0 {
		return nil
	}

	var params []paramInfo
	dec := json.NewDecoder(bytes.NewReader(schema))
	depth := 0
	inProperties := false
	propertiesDepth := 0

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if inProperties && depth < propertiesDepth {
					inProperties = false
				}
			}
		case string:
			if !inProperties && depth == 1 && v == "properties" {
				inProperties = true
				propertiesDepth = depth + 1
				continue
			}
			if inProperties && depth == propertiesDepth {
				if p, ok := doc.Properties[v]; ok {
					params = append(params, paramInfo{name: v, typeTag: p.Type})
				}
			}
		}
	}
	return params
}
