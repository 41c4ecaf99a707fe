// File: internal/services/user_services/auth_service_test.go
package user_services

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/repository/user"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(user.NewGormUserRepository(db), "test-secret", noopLogger{})
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	created, token, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("username is lowercased", func(t *testing.T) {
		if created.Username != "alice" {
			t.Errorf("expected username alice, got %q", created.Username)
		}
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		if created.Password == "password123" {
			t.Error("password must not be stored in plain text")
		}
		if err := created.ValidatePassword("password123"); err != nil {
			t.Errorf("ValidatePassword() error = %v", err)
		}
	})

	t.Run("session token resolves back to the user", func(t *testing.T) {
		userID, err := svc.ValidateJWTToken(token)
		if err != nil {
			t.Fatalf("ValidateJWTToken() error = %v", err)
		}
		if userID != created.ID {
			t.Errorf("expected user ID %d, got %d", created.ID, userID)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "other", "alice@example.com", "password123")
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("duplicate username is rejected case-insensitively", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "ALICE", "alice2@example.com", "password123")
		if !errors.Is(err, ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "bob", "bob@example.com", "short")
		if err == nil {
			t.Error("expected error for short password, got nil")
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		u, token, err := svc.Login(ctx, "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if u.ID != registered.ID {
			t.Errorf("expected user ID %d, got %d", registered.ID, u.ID)
		}

		userID, err := svc.ValidateJWTToken(token)
		if err != nil {
			t.Fatalf("ValidateJWTToken() error = %v", err)
		}
		if userID != registered.ID {
			t.Errorf("expected user ID %d from token, got %d", registered.ID, userID)
		}
	})

	t.Run("unknown email reports a missing user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "password123")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("wrong password reports invalid credentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("empty credentials are rejected", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_ValidateJWTToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	t.Run("empty token", func(t *testing.T) {
		if _, err := svc.ValidateJWTToken(""); err == nil {
			t.Error("expected error for empty token, got nil")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateJWTToken("not.a.token"); err == nil {
			t.Error("expected error for garbage token, got nil")
		}
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := NewAuthService(user.NewGormUserRepository(db), "other-secret", noopLogger{})
		_, token, err := other.Register(context.Background(), "mallory", "mallory@example.com", "password123")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if _, err := svc.ValidateJWTToken(token); err == nil {
			t.Error("expected error for foreign signature, got nil")
		}
	})
}
