// File: internal/repository/room/room_repository.go
package room

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/roomhub/go-roomhub/internal/domain"
)

var ErrRoomNotFound = errors.New("room not found")

type gormRoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &gormRoomRepository{db: db}
}

// Create persists a new room after input validation.
func (r *gormRoomRepository) Create(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if err := r.validateRoomInput(room); err != nil {
		log.Printf("[RoomRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		log.Printf("[RoomRepository] Database error during room creation for host ID %d: %v", room.HostID, err)
		return nil, errors.New("database error creating room")
	}

	log.Printf("[RoomRepository] Room created successfully with ID: %d for host: %d", room.ID, room.HostID)
	return room, nil
}

func (r *gormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	if id == 0 {
		return nil, errors.New("invalid room ID")
	}

	var room domain.Room
	err := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Topic").
		First(&room, id).Error
	return r.handleFindError(err, &room)
}

func (r *gormRoomRepository) FindByHostID(ctx context.Context, hostID uint) ([]domain.Room, error) {
	if hostID == 0 {
		return nil, errors.New("invalid host ID")
	}

	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Preload("Topic").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		log.Printf("[RoomRepository] Database error finding rooms for host ID %d: %v", hostID, err)
		return nil, errors.New("database error fetching rooms")
	}
	return rooms, nil
}

// FindAllWithRelations loads every room with host, topic and participants,
// as exposed by the JSON endpoint.
func (r *gormRoomRepository) FindAllWithRelations(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		Find(&rooms).Error
	if err != nil {
		log.Printf("[RoomRepository] Database error fetching all rooms: %v", err)
		return nil, errors.New("database error fetching rooms")
	}
	return rooms, nil
}

// Search matches the query as a case-insensitive substring of the topic
// name, the room name or the description. LIKE metacharacters in the query
// match literally.
func (r *gormRoomRepository) Search(ctx context.Context, query string) ([]domain.Room, error) {
	pattern := likePattern(query)

	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Where(`LOWER(topics.name) LIKE ? ESCAPE '\' OR LOWER(rooms.name) LIKE ? ESCAPE '\' OR LOWER(rooms.description) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Preload("Host").
		Preload("Topic").
		Preload("Participants").
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	if err != nil {
		log.Printf("[RoomRepository] Database error searching rooms for %q: %v", query, err)
		return nil, errors.New("database error searching rooms")
	}
	return rooms, nil
}

func (r *gormRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	if room.ID == 0 {
		return errors.New("invalid room ID")
	}

	if err := r.validateRoomInput(room); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).
		Model(&domain.Room{ID: room.ID}).
		Updates(map[string]interface{}{
			"name":        room.Name,
			"description": room.Description,
			"topic_id":    room.TopicID,
		}).Error
	if err != nil {
		log.Printf("[RoomRepository] Database error updating room ID %d: %v", room.ID, err)
		return errors.New("database error updating room")
	}

	log.Printf("[RoomRepository] Room updated successfully with ID: %d", room.ID)
	return nil
}

// Delete removes the room together with its messages and participant rows.
func (r *gormRoomRepository) Delete(ctx context.Context, roomID uint) error {
	if roomID == 0 {
		return errors.New("invalid room ID")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Room{ID: roomID}).Association("Participants").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&domain.Room{}, roomID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		log.Printf("[RoomRepository] Database error deleting room ID %d: %v", roomID, err)
		return errors.New("database error deleting room")
	}

	log.Printf("[RoomRepository] Room deleted successfully with ID: %d", roomID)
	return nil
}

// AddParticipant inserts the membership row unless it already exists, so
// the participant relation stays a set.
func (r *gormRoomRepository) AddParticipant(ctx context.Context, roomID, userID uint) error {
	if roomID == 0 || userID == 0 {
		return errors.New("invalid room ID or user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Table("room_participants").
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		log.Printf("[RoomRepository] Database error checking participant membership: %v", err)
		return errors.New("database error checking participant membership")
	}
	if count > 0 {
		return nil
	}

	err = r.db.WithContext(ctx).
		Model(&domain.Room{ID: roomID}).
		Association("Participants").
		Append(&domain.User{ID: userID})
	if err != nil {
		log.Printf("[RoomRepository] Database error adding participant %d to room %d: %v", userID, roomID, err)
		return errors.New("database error adding participant")
	}

	return nil
}

func (r *gormRoomRepository) FindParticipants(ctx context.Context, roomID uint) ([]domain.User, error) {
	if roomID == 0 {
		return nil, errors.New("invalid room ID")
	}

	var users []domain.User
	err := r.db.WithContext(ctx).
		Model(&domain.Room{ID: roomID}).
		Association("Participants").
		Find(&users)
	if err != nil {
		log.Printf("[RoomRepository] Database error fetching participants for room %d: %v", roomID, err)
		return nil, errors.New("database error fetching participants")
	}
	return users, nil
}

// likePattern builds a case-insensitive containment pattern for a LIKE
// clause with ESCAPE '\'. Wildcards in the query are escaped so a search
// for a literal % or _ stays a substring match.
func likePattern(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, `%`, `\%`)
	q = strings.ReplaceAll(q, `_`, `\_`)
	return "%" + q + "%"
}

// ===== VALIDATION HELPERS =====

func (r *gormRoomRepository) validateRoomInput(room *domain.Room) error {
	if room == nil {
		return errors.New("room cannot be nil")
	}
	if room.HostID == 0 {
		return errors.New("host ID is required")
	}
	if room.TopicID == 0 {
		return errors.New("topic ID is required")
	}
	if strings.TrimSpace(room.Name) == "" {
		return errors.New("room name is required")
	}
	return nil
}

// ===== ERROR HANDLING HELPERS =====

func (r *gormRoomRepository) handleFindError(err error, room *domain.Room) (*domain.Room, error) {
	if err == nil {
		return room, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}

	log.Printf("[RoomRepository] Database error during lookup: %v", err)
	return nil, errors.New("database query failed")
}
