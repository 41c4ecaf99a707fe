// File: internal/services/user_services/profile_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/repository/message"
	"github.com/roomhub/go-roomhub/internal/repository/room"
	"github.com/roomhub/go-roomhub/internal/repository/topic"
	"github.com/roomhub/go-roomhub/internal/repository/user"
)

// ProfileData is everything the profile page renders: the user, the rooms
// they host, their messages and the full topic list for the sidebar.
type ProfileData struct {
	User     *domain.User
	Rooms    []domain.Room
	Messages []domain.Message
	Topics   []domain.Topic
}

// ProfileService loads profile pages and applies profile edits. Edits only
// ever touch the caller's own record.
type ProfileService struct {
	userRepo    user.UserRepository
	roomRepo    room.RoomRepository
	messageRepo message.MessageRepository
	topicRepo   topic.TopicRepository
	logger      Logger
}

func NewProfileService(userRepo user.UserRepository, roomRepo room.RoomRepository, messageRepo message.MessageRepository, topicRepo topic.TopicRepository, logger Logger) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		topicRepo:   topicRepo,
		logger:      logger,
	}
}

// GetUser loads a single user by id.
func (s *ProfileService) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Profile assembles the profile page for the given user.
func (s *ProfileService) Profile(ctx context.Context, userID uint) (*ProfileData, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.FindByHostID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading hosted rooms: %w", err)
	}

	messages, err := s.messageRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}

	topics, err := s.topicRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}

	return &ProfileData{
		User:     u,
		Rooms:    rooms,
		Messages: messages,
		Topics:   topics,
	}, nil
}

// UpdateProfile applies the submitted profile fields to the caller's own
// record. avatar is the stored file name of a freshly uploaded image, empty
// to keep the current one.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, username, email, bio, avatar string) (*domain.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailTaken(ctx, email, userID)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.userRepo.UsernameTaken(ctx, username, userID)
	if err != nil {
		return nil, fmt.Errorf("checking username uniqueness: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	u.Username = username
	u.NormalizeUsername()
	u.Email = email
	u.Bio = bio
	if avatar != "" {
		u.Avatar = avatar
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID, "has_new_avatar", avatar != "")
	return u, nil
}
