// File: internal/services/user_services/types.go
package user_services

import "errors"

// Logger interface for all user services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

var (
	// ErrUserNotFound is surfaced verbatim on sign-in when the email lookup
	// fails, before any credential check.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrInvalidCredentials covers a failed password check.
	ErrInvalidCredentials = errors.New("invalid email address or password")

	ErrEmailTaken    = errors.New("a user with this email already exists")
	ErrUsernameTaken = errors.New("username already taken")
)

// Helper function for safe string slicing in log output.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
