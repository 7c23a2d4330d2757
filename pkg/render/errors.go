package render

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
)

// ErrorMapping splits feedback into inline field messages and form-level
// messages shown above the submit control.
type ErrorMapping struct {
	Fields map[form.Field][]string
	Form   []string
}

// For returns the messages attached to field.
func (m ErrorMapping) For(field form.Field) []string {
	return m.Fields[field]
}

// FieldErrors merges the view's validation messages with any extra payload
// supplied through RenderOptions.Errors. Validation messages come first; the
// payload is normalised through MapErrorPayload. The empty form already
// carries its messages.
func FieldErrors(view form.View, extra map[string][]string) ErrorMapping {
	mapping := MapErrorPayload(extra)
	for _, field := range form.Fields() {
		msg := view.Error(field)
		if msg == "" {
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[form.Field][]string)
		}
		mapping.Fields[field] = normalizeMessages(append([]string{msg}, mapping.Fields[field]...))
	}
	return mapping
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises keyed messages (including JSON-pointer and
// wrapper-prefixed keys such as "/body/email" or "data.name") onto the form's
// fields. Unknown keys become form-level messages so nothing is lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	for rawKey, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		field, ok := mapErrorKey(rawKey)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[form.Field][]string)
		}
		mapping.Fields[field] = append(mapping.Fields[field], normalized...)
	}

	for field, messages := range mapping.Fields {
		mapping.Fields[field] = normalizeMessages(messages)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorKey(raw string) (form.Field, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) != 1 {
		return "", false
	}
	field, err := form.ParseField(segments[0])
	if err != nil {
		return "", false
	}
	return field, true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$./")
	if clean == "" {
		return nil
	}
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes":
			segments = segments[1:]
		default:
			return segments
		}
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
