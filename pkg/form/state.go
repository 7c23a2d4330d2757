package form

import (
	"fmt"
	"strings"
)

// Field identifies one of the registration inputs.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// Fields lists the inputs in render order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldPassword}
}

// ParseField resolves an input name (case-insensitive, surrounding space
// ignored) into a Field.
func ParseField(raw string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(raw))) {
	case FieldName:
		return FieldName, nil
	case FieldEmail:
		return FieldEmail, nil
	case FieldPassword:
		return FieldPassword, nil
	default:
		return "", fmt.Errorf("form: unknown field %q", raw)
	}
}

// Label returns the human label shown next to the input.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldPassword:
		return "Password"
	default:
		return string(f)
	}
}

// Placeholder returns the hint shown inside an empty input.
func (f Field) Placeholder() string {
	switch f {
	case FieldName:
		return "Enter your name"
	case FieldEmail:
		return "Enter your email"
	case FieldPassword:
		return "Enter your password"
	default:
		return ""
	}
}

// FormState carries the sanitised value of every field. The zero value is the
// initial, empty form.
type FormState struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Get returns the stored value for field.
func (s FormState) Get(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password
	default:
		return ""
	}
}

// With returns a copy of s with field set to value. Unknown fields leave the
// state untouched. The value is stored as given; callers sanitise first.
func (s FormState) With(field Field, value string) FormState {
	switch field {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldPassword:
		s.Password = value
	}
	return s
}
