package utils

import (
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 24
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_]*$`)

// ValidationError represents a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUsername enforces 3-24 characters of letters, digits and
// underscores, starting with a letter or digit.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	switch {
	case len(username) < MinUsernameLength:
		return &ValidationError{Field: "username", Message: "Username must be at least 3 characters"}
	case len(username) > MaxUsernameLength:
		return &ValidationError{Field: "username", Message: "Username must be at most 24 characters"}
	case !usernameRegex.MatchString(username):
		return &ValidationError{Field: "username", Message: "Username can only contain letters, numbers, and underscores, and must start with a letter or number"}
	}
	return nil
}

// NormalizeUsername converts username to lowercase for storage.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
