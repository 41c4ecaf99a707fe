// File: internal/forms/forms.go

// Package forms holds explicit validators for submitted field values. Each
// form normalizes its input and returns a field-error map; handlers
// re-render the page with those errors instead of persisting anything.
package forms

import (
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const passwordMinLength = 8

// Errors maps a field name to its validation message.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

// RegistrationForm carries the sign-up fields.
type RegistrationForm struct {
	Username string
	Email    string
	Password string
}

// Normalize trims all fields and lower-cases username and email.
func (f *RegistrationForm) Normalize() {
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}

func (f *RegistrationForm) Validate() Errors {
	errs := Errors{}
	if !usernameRegex.MatchString(f.Username) {
		errs["username"] = "Username must be 3-20 characters, alphanumeric or underscore."
	}
	if !emailRegex.MatchString(f.Email) {
		errs["email"] = "A valid email address is required."
	}
	if len(f.Password) < passwordMinLength {
		errs["password"] = "Password must be at least 8 characters."
	}
	return errs
}

// UserForm carries the editable profile fields.
type UserForm struct {
	Username string
	Email    string
	Bio      string
}

func (f *UserForm) Normalize() {
	f.Username = strings.ToLower(strings.TrimSpace(f.Username))
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Bio = strings.TrimSpace(f.Bio)
}

func (f *UserForm) Validate() Errors {
	errs := Errors{}
	if !usernameRegex.MatchString(f.Username) {
		errs["username"] = "Username must be 3-20 characters, alphanumeric or underscore."
	}
	if !emailRegex.MatchString(f.Email) {
		errs["email"] = "A valid email address is required."
	}
	return errs
}

// RoomForm carries the room create/update fields. Topic is a free-form name
// resolved with get-or-create semantics.
type RoomForm struct {
	Name        string
	Description string
	Topic       string
}

func (f *RoomForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Topic = strings.TrimSpace(f.Topic)
}

func (f *RoomForm) Validate() Errors {
	errs := Errors{}
	if f.Name == "" {
		errs["name"] = "Room name is required."
	}
	if f.Topic == "" {
		errs["topic"] = "Topic is required."
	}
	return errs
}

// MessageForm carries a message body, for both posting and editing.
type MessageForm struct {
	Body string
}

func (f *MessageForm) Normalize() {
	f.Body = strings.TrimSpace(f.Body)
}

func (f *MessageForm) Validate() Errors {
	errs := Errors{}
	if f.Body == "" {
		errs["body"] = "Message body cannot be empty."
	}
	return errs
}
