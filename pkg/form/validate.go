package form

import (
	"regexp"
	"strings"
)

const (
	MsgNameRequired     = "Name is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgPasswordRequired = "Password is required"
	MsgPasswordWeak     = "Password must have at least 6 characters, one uppercase letter, one number, and one special character"
)

// PasswordSpecials is the fixed set of characters that satisfy the
// "special character" requirement.
const PasswordSpecials = "@$!%*?&"

// PasswordMinLength is the shortest run of allowed characters accepted.
const PasswordMinLength = 6

// EmailPattern is a syntactic approximation of an address. The TLD is capped
// at four letters.
const EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`

var emailRegex = regexp.MustCompile(EmailPattern)

// ValidationResult maps each invalid field to its message. A field without an
// entry is valid.
type ValidationResult struct {
	Errors map[Field]string `json:"errors"`
	Valid  bool             `json:"valid"`
}

// Error returns the message attached to field, if any.
func (r ValidationResult) Error(field Field) (string, bool) {
	msg, ok := r.Errors[field]
	return msg, ok
}

// Messages flattens the errors into the map[string][]string shape renderers
// consume.
func (r ValidationResult) Messages() map[string][]string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Errors))
	for field, msg := range r.Errors {
		out[string(field)] = []string{msg}
	}
	return out
}

// Validate checks every field of state; it never stops at the first failure.
func Validate(state FormState) ValidationResult {
	errs := make(map[Field]string, 3)
	if msg, ok := ValidateName(state.Name); !ok {
		errs[FieldName] = msg
	}
	if msg, ok := ValidateEmail(state.Email); !ok {
		errs[FieldEmail] = msg
	}
	if msg, ok := ValidatePassword(state.Password); !ok {
		errs[FieldPassword] = msg
	}
	return ValidationResult{
		Errors: errs,
		Valid:  len(errs) == 0,
	}
}

// ValidateField runs the rule for a single field.
func ValidateField(field Field, value string) (string, bool) {
	switch field {
	case FieldName:
		return ValidateName(value)
	case FieldEmail:
		return ValidateEmail(value)
	case FieldPassword:
		return ValidatePassword(value)
	default:
		return "", true
	}
}

func ValidateName(value string) (string, bool) {
	if value == "" {
		return MsgNameRequired, false
	}
	return "", true
}

func ValidateEmail(value string) (string, bool) {
	if value == "" || !emailRegex.MatchString(value) {
		return MsgEmailInvalid, false
	}
	return "", true
}

func ValidatePassword(value string) (string, bool) {
	if value == "" {
		return MsgPasswordRequired, false
	}
	if !strongPassword(value) {
		return MsgPasswordWeak, false
	}
	return "", true
}

// strongPassword reports whether some position in value starts a run of at
// least PasswordMinLength allowed characters while the rest of that line
// still holds a lowercase letter, an uppercase letter, a digit and a special.
// The match is not anchored: characters outside the allowed set elsewhere in
// the password do not fail it on their own.
func strongPassword(value string) bool {
	for start := 0; start < len(value); start++ {
		if allowedRun(value[start:]) < PasswordMinLength {
			continue
		}
		line := value[start:]
		if end := strings.IndexAny(line, "\n\r"); end >= 0 {
			line = line[:end]
		}
		if hasPasswordClasses(line) {
			return true
		}
	}
	return false
}

func allowedRun(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isPasswordChar(s[i]) {
			break
		}
		n++
	}
	return n
}

func hasPasswordClasses(s string) bool {
	var lower, upper, digit, special bool
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.IndexByte(PasswordSpecials, c) >= 0:
			special = true
		}
	}
	return lower && upper && digit && special
}

func isPasswordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	default:
		return strings.IndexByte(PasswordSpecials, c) >= 0
	}
}
