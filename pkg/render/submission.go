package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// HiddenField is a hidden input emitted next to the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token under the
// input name the backend expects ("_csrf", "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Blank names
// are dropped and later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns the fields ordered by name for deterministic
// markup.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(clean))
	for _, name := range slices.Sorted(maps.Keys(clean)) {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
