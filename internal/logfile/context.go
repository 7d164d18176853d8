package logfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Context is the structured payload attached to a log entry. Keys keep their
// insertion order so the rendered output follows the caller's order.
type Context = orderedmap.OrderedMap[string, any]

// NewContext builds a Context from alternating key/value arguments. A trailing
// key without a value is stored with a nil value.
func NewContext(kv ...any) *Context {
	c := orderedmap.New[string, any](len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			b, _ := json.Marshal(kv[i])
			key = string(b)
		}
		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		c.Set(key, value)
	}
	return c
}

// ParseContext decodes a JSON object into a Context. An empty or blank input
// yields a nil Context.
func ParseContext(raw string) (*Context, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "{") {
		return nil, NewError(ErrCodeValidationFailed, "context must be a JSON object", nil)
	}
	c := orderedmap.New[string, any]()
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		return nil, NewError(ErrCodeValidationFailed, "context is not valid JSON", err)
	}
	return c, nil
}

func contextLen(c *Context) int {
	if c == nil {
		return 0
	}
	return c.Len()
}

// encodeJSON renders v as compact JSON without HTML escaping.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// contextJSON renders the context as a single JSON object, preserving order.
func contextJSON(c *Context) string {
	if contextLen(c) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for pair := c.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		key, _ := encodeJSON(pair.Key)
		sb.WriteString(key)
		sb.WriteByte(':')
		sb.WriteString(literal(pair.Value, false))
	}
	sb.WriteByte('}')
	return sb.String()
}

// contextDump renders one "key: value" line per entry. Structured values are
// pretty-printed with a four space indent.
func contextDump(c *Context) string {
	var sb strings.Builder
	for pair := c.Oldest(); pair != nil; pair = pair.Next() {
		sb.WriteString(pair.Key)
		sb.WriteString(": ")
		sb.WriteString(literal(pair.Value, true))
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), " \t\r\n")
}

// literal renders a context value as JSON. Values that cannot be encoded fall
// back to their quoted Go string form.
func literal(v any, pretty bool) string {
	out, err := encodeJSON(v)
	if err != nil {
		out, _ = encodeJSON(stringify(v))
	}
	if !pretty {
		return out
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(out), "", indentUnit); err != nil {
		return out
	}
	return buf.String()
}

func stringify(v any) string {
	return fmt.Sprint(v)
}

const indentUnit = "    "

// indent prefixes every line of s with indentUnit.
func indent(s string) string {
	return indentUnit + strings.ReplaceAll(s, "\n", "\n"+indentUnit)
}
