// File: internal/forms/forms_test.go
package forms

import "testing"

func TestRegistrationForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      RegistrationForm
		wantField string
	}{
		{"valid", RegistrationForm{Username: "alice_1", Email: "alice@example.com", Password: "password123"}, ""},
		{"short username", RegistrationForm{Username: "al", Email: "alice@example.com", Password: "password123"}, "username"},
		{"username with spaces", RegistrationForm{Username: "al ice", Email: "alice@example.com", Password: "password123"}, "username"},
		{"bad email", RegistrationForm{Username: "alice", Email: "not-an-email", Password: "password123"}, "email"},
		{"short password", RegistrationForm{Username: "alice", Email: "alice@example.com", Password: "short"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.form.Normalize()
			errs := tt.form.Validate()
			if tt.wantField == "" {
				if errs.Any() {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestRegistrationForm_Normalize(t *testing.T) {
	form := RegistrationForm{Username: "  Alice ", Email: " ALICE@Example.COM ", Password: " password123 "}
	form.Normalize()

	if form.Username != "alice" {
		t.Errorf("expected username alice, got %q", form.Username)
	}
	if form.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", form.Email)
	}
	if form.Password != "password123" {
		t.Errorf("expected trimmed password, got %q", form.Password)
	}
}

func TestRoomForm_Validate(t *testing.T) {
	t.Run("missing name and topic", func(t *testing.T) {
		form := RoomForm{Name: "  ", Topic: ""}
		form.Normalize()
		errs := form.Validate()
		if _, ok := errs["name"]; !ok {
			t.Error("expected error on name")
		}
		if _, ok := errs["topic"]; !ok {
			t.Error("expected error on topic")
		}
	})

	t.Run("valid", func(t *testing.T) {
		form := RoomForm{Name: "Goroutines", Topic: "Go"}
		form.Normalize()
		if errs := form.Validate(); errs.Any() {
			t.Errorf("expected no errors, got %v", errs)
		}
	})
}

func TestMessageForm_Validate(t *testing.T) {
	form := MessageForm{Body: "   "}
	form.Normalize()
	if errs := form.Validate(); !errs.Any() {
		t.Error("expected error for blank body")
	}

	form = MessageForm{Body: "hello"}
	form.Normalize()
	if errs := form.Validate(); errs.Any() {
		t.Errorf("expected no errors, got %v", errs)
	}
}
