// File: internal/services/room_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/repository/message"
	"github.com/roomhub/go-roomhub/internal/repository/room"
	"github.com/roomhub/go-roomhub/internal/repository/topic"
)

// RoomService implements room and message mutations. Every update or delete
// is guarded by an ownership check: rooms belong to their host, messages to
// their author.
type RoomService struct {
	roomRepo    room.RoomRepository
	topicRepo   topic.TopicRepository
	messageRepo message.MessageRepository
	logger      Logger
}

func NewRoomService(roomRepo room.RoomRepository, topicRepo topic.TopicRepository, messageRepo message.MessageRepository, logger Logger) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		topicRepo:   topicRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// CreateRoom resolves the topic with get-or-create semantics and creates a
// room hosted by hostID.
func (s *RoomService) CreateRoom(ctx context.Context, hostID uint, name, description, topicName string) (*domain.Room, error) {
	t, err := s.topicRepo.GetOrCreate(ctx, topicName)
	if err != nil {
		return nil, fmt.Errorf("resolving topic: %w", err)
	}

	created, err := s.roomRepo.Create(ctx, &domain.Room{
		HostID:      hostID,
		TopicID:     t.ID,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	s.logger.Info("room created", "room_id", created.ID, "host_id", hostID, "topic", t.Name)
	return created, nil
}

// GetRoom loads a room with its host and topic.
func (s *RoomService) GetRoom(ctx context.Context, roomID uint) (*domain.Room, error) {
	rm, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rm, nil
}

// UpdateRoom overwrites name, description and topic. Only the host may
// update a room; the host itself never changes.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID, actorID uint, name, description, topicName string) error {
	rm, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !rm.IsHostedBy(actorID) {
		s.logger.Warn("room update denied", "room_id", roomID, "actor_id", actorID, "host_id", rm.HostID)
		return ErrForbidden
	}

	t, err := s.topicRepo.GetOrCreate(ctx, topicName)
	if err != nil {
		return fmt.Errorf("resolving topic: %w", err)
	}

	rm.Name = name
	rm.Description = description
	rm.TopicID = t.ID
	if err := s.roomRepo.Update(ctx, rm); err != nil {
		return fmt.Errorf("updating room: %w", err)
	}

	s.logger.Info("room updated", "room_id", roomID, "actor_id", actorID)
	return nil
}

// DeleteRoom removes the room, its messages and its participant memberships.
// Only the host may delete a room.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID, actorID uint) error {
	rm, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !rm.IsHostedBy(actorID) {
		s.logger.Warn("room delete denied", "room_id", roomID, "actor_id", actorID, "host_id", rm.HostID)
		return ErrForbidden
	}

	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	s.logger.Info("room deleted", "room_id", roomID, "actor_id", actorID)
	return nil
}

// PostMessage creates a message in the room and unions the author into the
// room's participant set. Re-posting never duplicates the membership.
func (s *RoomService) PostMessage(ctx context.Context, roomID, authorID uint, body string) (*domain.Message, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	msg, err := s.messageRepo.Create(ctx, &domain.Message{
		UserID: authorID,
		RoomID: roomID,
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	if err := s.roomRepo.AddParticipant(ctx, roomID, authorID); err != nil {
		return nil, fmt.Errorf("adding participant: %w", err)
	}

	s.logger.Info("message posted", "message_id", msg.ID, "room_id", roomID, "author_id", authorID)
	return msg, nil
}

// GetMessage loads a message with its author and room.
func (s *RoomService) GetMessage(ctx context.Context, messageID uint) (*domain.Message, error) {
	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

// UpdateMessage replaces the body. Only the author may update a message.
// The updated message is returned so callers can redirect to its room.
func (s *RoomService) UpdateMessage(ctx context.Context, messageID, actorID uint, body string) (*domain.Message, error) {
	msg, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if !msg.IsAuthoredBy(actorID) {
		s.logger.Warn("message update denied", "message_id", messageID, "actor_id", actorID, "author_id", msg.UserID)
		return nil, ErrForbidden
	}

	msg.Body = body
	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	s.logger.Info("message updated", "message_id", messageID, "actor_id", actorID)
	return msg, nil
}

// DeleteMessage removes the message. Only the author may delete it.
func (s *RoomService) DeleteMessage(ctx context.Context, messageID, actorID uint) error {
	msg, err := s.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if !msg.IsAuthoredBy(actorID) {
		s.logger.Warn("message delete denied", "message_id", messageID, "actor_id", actorID, "author_id", msg.UserID)
		return ErrForbidden
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	s.logger.Info("message deleted", "message_id", messageID, "actor_id", actorID)
	return nil
}
