package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxSanitizeRounds bounds the fixed-point loop in Sanitize. Real input
// settles after the first or second pass.
const maxSanitizeRounds = 4

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize trims raw and strips every element and attribute from it, keeping
// only text. Text comes back HTML-escaped, so "a & b" yields "a &amp; b".
// The result is stable: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	current := strings.TrimSpace(raw)
	if current == "" {
		return ""
	}
	policy := textSanitizer()
	for i := 0; i < maxSanitizeRounds; i++ {
		next := strings.TrimSpace(policy.Sanitize(current))
		if next == current {
			break
		}
		current = next
	}
	return current
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
