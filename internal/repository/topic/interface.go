// File: internal/repository/topic/interface.go
package topic

import (
	"context"

	"github.com/roomhub/go-roomhub/internal/domain"
)

// TopicRepository handles topic data operations.
type TopicRepository interface {
	// GetOrCreate looks a topic up by exact name and creates it when absent.
	// It never produces duplicate topics for the same name.
	GetOrCreate(ctx context.Context, name string) (*domain.Topic, error)
	FindByID(ctx context.Context, id uint) (*domain.Topic, error)
	FindAll(ctx context.Context) ([]domain.Topic, error)
	FindFirst(ctx context.Context, limit int) ([]domain.Topic, error)
	SearchByName(ctx context.Context, query string) ([]domain.Topic, error)
}
