// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/roomhub/go-roomhub/internal/domain"
)

// MessageRepository handles message data operations.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id uint) (*domain.Message, error)

	// FindByRoomID returns the room's conversation oldest-first.
	FindByRoomID(ctx context.Context, roomID uint) ([]domain.Message, error)
	// FindByUserID returns a user's messages newest-first for the profile page.
	FindByUserID(ctx context.Context, userID uint) ([]domain.Message, error)
	// FindAll returns every message newest-first for the activity feed.
	FindAll(ctx context.Context) ([]domain.Message, error)
	// FindByRoomTopicQuery returns messages whose room's topic name contains
	// query case-insensitively, newest-first.
	FindByRoomTopicQuery(ctx context.Context, query string) ([]domain.Message, error)

	Update(ctx context.Context, message *domain.Message) error
	Delete(ctx context.Context, messageID uint) error
}
