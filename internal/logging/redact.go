package logging

import "strings"

// RedactEmail keeps the first rune of the local part and the domain.
func RedactEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "[redacted]"
	}
	if local == "" {
		return "***@" + domain
	}

	runes := []rune(local)
	return string(runes[0]) + "***@" + domain
}

// RedactName keeps the first rune of name.
func RedactName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	runes := []rune(name)
	return string(runes[0]) + "***"
}
