// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/roomhub/go-roomhub/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create persists a new message after input validation.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		log.Printf("[MessageRepository] Database error during message creation for room ID %d: %v", message.RoomID, err)
		return nil, errors.New("database error creating message")
	}

	log.Printf("[MessageRepository] Message created successfully with ID: %d for room: %d", message.ID, message.RoomID)
	return message, nil
}

func (r *gormMessageRepository) FindByID(ctx context.Context, id uint) (*domain.Message, error) {
	if id == 0 {
		return nil, errors.New("invalid message ID")
	}

	var message domain.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		First(&message, id).Error
	return r.handleFindError(err, &message)
}

func (r *gormMessageRepository) FindByRoomID(ctx context.Context, roomID uint) ([]domain.Message, error) {
	if roomID == 0 {
		return nil, errors.New("invalid room ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for room ID %d: %v", roomID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Message, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) FindAll(ctx context.Context) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error fetching all messages: %v", err)
		return nil, errors.New("database error fetching messages")
	}
	return messages, nil
}

// FindByRoomTopicQuery feeds the recent-activity panel on the home page:
// messages belonging to rooms whose topic name matches the search query.
// Wildcards in the query match literally.
func (r *gormMessageRepository) FindByRoomTopicQuery(ctx context.Context, query string) ([]domain.Message, error) {
	pattern := likePattern(query)

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Where(`LOWER(topics.name) LIKE ? ESCAPE '\'`, pattern).
		Preload("User").
		Preload("Room").
		Order("messages.created_at DESC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error searching messages for %q: %v", query, err)
		return nil, errors.New("database error searching messages")
	}
	return messages, nil
}

func (r *gormMessageRepository) Update(ctx context.Context, message *domain.Message) error {
	if message.ID == 0 {
		return errors.New("invalid message ID")
	}

	if err := r.validateMessageInput(message); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Message{ID: message.ID}).
		Update("body", message.Body)
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error updating message ID %d: %v", message.ID, result.Error)
		return errors.New("database error updating message")
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	log.Printf("[MessageRepository] Message updated successfully with ID: %d", message.ID)
	return nil
}

func (r *gormMessageRepository) Delete(ctx context.Context, messageID uint) error {
	if messageID == 0 {
		return errors.New("invalid message ID")
	}

	result := r.db.WithContext(ctx).Delete(&domain.Message{}, messageID)
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting message ID %d: %v", messageID, result.Error)
		return errors.New("database error deleting message")
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	log.Printf("[MessageRepository] Message deleted successfully with ID: %d", messageID)
	return nil
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

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.RoomID == 0 {
		return errors.New("room ID is required")
	}
	if message.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(message.Body) == "" {
		return errors.New("message body cannot be empty")
	}
	return nil
}

// ===== ERROR HANDLING HELPERS =====

func (r *gormMessageRepository) handleFindError(err error, message *domain.Message) (*domain.Message, error) {
	if err == nil {
		return message, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}

	log.Printf("[MessageRepository] Database error during lookup: %v", err)
	return nil, errors.New("database query failed")
}
