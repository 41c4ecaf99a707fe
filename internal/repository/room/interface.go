// File: internal/repository/room/interface.go
package room

import (
	"context"

	"github.com/roomhub/go-roomhub/internal/domain"
)

// RoomRepository handles room data operations, including the participant
// membership that backs the many-to-many relation with users.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	FindByID(ctx context.Context, id uint) (*domain.Room, error)
	FindByHostID(ctx context.Context, hostID uint) ([]domain.Room, error)
	FindAllWithRelations(ctx context.Context) ([]domain.Room, error)

	// Search filters rooms whose topic name, room name or description
	// contains query case-insensitively. An empty query matches all rooms.
	Search(ctx context.Context, query string) ([]domain.Room, error)

	Update(ctx context.Context, room *domain.Room) error

	// Delete removes the room, its messages and its participant memberships
	// in one transaction.
	Delete(ctx context.Context, roomID uint) error

	// AddParticipant unions userID into the room's participant set. Adding
	// an existing participant is a no-op.
	AddParticipant(ctx context.Context, roomID, userID uint) error
	FindParticipants(ctx context.Context, roomID uint) ([]domain.User, error)
}
