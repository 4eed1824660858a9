package geojson

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TypeName returns the runtime type label used in schema reports. Numbers
// are split into int and float based on the source lexeme.
func TypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number:
		if isIntLexeme(t) {
			return "int"
		}
		return "float"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func isIntLexeme(n json.Number) bool {
	if _, err := n.Int64(); err == nil {
		return true
	}
	// Out-of-range integers still count as ints if the lexeme has no
	// fractional or exponent part.
	return !strings.ContainsAny(n.String(), ".eE")
}

// Stringify renders a value for CSV cells, sample lists, and name sets.
// Strings pass through verbatim, numbers keep their source lexeme, null is
// the empty string, and nested structures render as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
