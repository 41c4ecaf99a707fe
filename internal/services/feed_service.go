// File: internal/services/feed_service.go
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

// topicChipCount is how many topics the home page shows as quick filters.
const topicChipCount = 4

// HomeFeed is everything the home listing renders: the filtered rooms with
// their count, the topic chips and the recent activity panel.
type HomeFeed struct {
	Rooms     []domain.Room
	RoomCount int
	Topics    []domain.Topic
	Messages  []domain.Message
}

// RoomDetail is a room page: the room, its conversation oldest-first and
// its participant set.
type RoomDetail struct {
	Room         *domain.Room
	Messages     []domain.Message
	Participants []domain.User
}

// FeedService implements the read-only listing and search queries.
type FeedService struct {
	roomRepo    room.RoomRepository
	topicRepo   topic.TopicRepository
	messageRepo message.MessageRepository
	logger      Logger
}

func NewFeedService(roomRepo room.RoomRepository, topicRepo topic.TopicRepository, messageRepo message.MessageRepository, logger Logger) *FeedService {
	return &FeedService{
		roomRepo:    roomRepo,
		topicRepo:   topicRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Home filters rooms by the search query (topic name, room name or
// description substring, case-insensitive; empty query matches all) and
// loads the topic chips and the activity panel for rooms in matching topics.
func (s *FeedService) Home(ctx context.Context, query string) (*HomeFeed, error) {
	rooms, err := s.roomRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching rooms: %w", err)
	}

	topics, err := s.topicRepo.FindFirst(ctx, topicChipCount)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}

	messages, err := s.messageRepo.FindByRoomTopicQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading recent activity: %w", err)
	}

	return &HomeFeed{
		Rooms:     rooms,
		RoomCount: len(rooms),
		Topics:    topics,
		Messages:  messages,
	}, nil
}

// RoomDetail loads a room page. Returns ErrNotFound for an absent room id.
func (s *FeedService) RoomDetail(ctx context.Context, roomID uint) (*RoomDetail, error) {
	rm, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	messages, err := s.messageRepo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("loading room messages: %w", err)
	}

	participants, err := s.roomRepo.FindParticipants(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("loading participants: %w", err)
	}

	return &RoomDetail{
		Room:         rm,
		Messages:     messages,
		Participants: participants,
	}, nil
}

// Topics lists topics whose name contains query case-insensitively.
func (s *FeedService) Topics(ctx context.Context, query string) ([]domain.Topic, error) {
	return s.topicRepo.SearchByName(ctx, query)
}

// Activity lists all messages newest-first.
func (s *FeedService) Activity(ctx context.Context) ([]domain.Message, error) {
	return s.messageRepo.FindAll(ctx)
}
