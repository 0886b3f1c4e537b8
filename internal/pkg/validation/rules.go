package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 100

	MessageMaxLength = 5000
)

var compiledEmail = regexp.MustCompile(EmailPattern)

// NormalizeEmail lowercases and trims an address before it is stored or compared
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail checks a normalized address against EmailPattern
func IsValidEmail(email string) bool {
	return compiledEmail.MatchString(NormalizeEmail(email))
}

// IsValidPassword enforces the minimum length
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidName checks trimmed length bounds
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}
