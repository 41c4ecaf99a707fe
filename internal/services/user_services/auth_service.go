// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/repository/user"
)

// AuthService is the AuthProvider of the application: it verifies
// credentials, establishes sessions as JWTs carried in a cookie, and
// resolves tokens back to a principal id.
type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Login authenticates a user by email and returns the user with a session
// token. A failed lookup returns ErrUserNotFound without attempting the
// password check; a failed password check returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_email", email != "",
			"has_password", password != "")
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.logger.Warn("login failed - user not found",
				"email", email[:min(4, len(email))]+"****")
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if err := u.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password",
			"email", email[:min(4, len(email))]+"****",
			"user_id", u.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateJWTToken(u)
	if err != nil {
		s.logger.Error("JWT token generation failed", "error", err, "user_id", u.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", u.ID, "username", u.Username)
	return u, token, nil
}

// Register creates a new user and immediately establishes a session for it.
// The username is normalized to lowercase before persisting.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	u := &domain.User{Username: username, Email: email}
	u.NormalizeUsername()

	if err := u.IsValid(); err != nil {
		return nil, "", fmt.Errorf("validation failed: %w", err)
	}

	taken, err := s.userRepo.EmailTaken(ctx, u.Email, 0)
	if err != nil {
		return nil, "", fmt.Errorf("checking email uniqueness: %w", err)
	}
	if taken {
		s.logger.Warn("registration failed - email already exists",
			"email", email[:min(4, len(email))]+"****")
		return nil, "", ErrEmailTaken
	}

	taken, err = s.userRepo.UsernameTaken(ctx, u.Username, 0)
	if err != nil {
		return nil, "", fmt.Errorf("checking username uniqueness: %w", err)
	}
	if taken {
		s.logger.Warn("registration failed - username already exists",
			"username", u.Username)
		return nil, "", ErrUsernameTaken
	}

	if err := u.HashPassword(password); err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		s.logger.Error("user creation failed", "error", err, "username", u.Username)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateJWTToken(created)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", created.ID,
		"username", created.Username)
	return created, token, nil
}

// ValidateJWTToken validates a session token and returns the user ID.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, errors.New("empty token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("invalid token claims")
		}
		return uint(userID), nil
	}

	return 0, errors.New("invalid token")
}

func (s *AuthService) generateJWTToken(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}
