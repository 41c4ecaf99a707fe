// File: internal/repository/topic/topic_repository.go
package topic

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/roomhub/go-roomhub/internal/domain"
)

var ErrTopicNotFound = errors.New("topic not found")

type gormTopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &gormTopicRepository{db: db}
}

// GetOrCreate resolves a topic by exact name, creating it on first use.
func (r *gormTopicRepository) GetOrCreate(ctx context.Context, name string) (*domain.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("topic name is required")
	}

	var topic domain.Topic
	err := r.db.WithContext(ctx).
		Where(domain.Topic{Name: name}).
		FirstOrCreate(&topic).Error
	if err != nil {
		log.Printf("[TopicRepository] Database error resolving topic %q: %v", name, err)
		return nil, errors.New("database error resolving topic")
	}

	return &topic, nil
}

func (r *gormTopicRepository) FindByID(ctx context.Context, id uint) (*domain.Topic, error) {
	if id == 0 {
		return nil, errors.New("invalid topic ID")
	}

	var topic domain.Topic
	err := r.db.WithContext(ctx).First(&topic, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		log.Printf("[TopicRepository] Database error during lookup: %v", err)
		return nil, errors.New("database query failed")
	}
	return &topic, nil
}

func (r *gormTopicRepository) FindAll(ctx context.Context) ([]domain.Topic, error) {
	var topics []domain.Topic
	if err := r.db.WithContext(ctx).Find(&topics).Error; err != nil {
		log.Printf("[TopicRepository] Database error fetching topics: %v", err)
		return nil, errors.New("database error fetching topics")
	}
	return topics, nil
}

// FindFirst returns the first limit topics, used for the topic chips on the
// home page.
func (r *gormTopicRepository) FindFirst(ctx context.Context, limit int) ([]domain.Topic, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	var topics []domain.Topic
	if err := r.db.WithContext(ctx).Limit(limit).Find(&topics).Error; err != nil {
		log.Printf("[TopicRepository] Database error fetching first %d topics: %v", limit, err)
		return nil, errors.New("database error fetching topics")
	}
	return topics, nil
}

// SearchByName lists topics whose name contains query, case-insensitively.
// An empty query matches all topics; wildcards in the query match literally.
func (r *gormTopicRepository) SearchByName(ctx context.Context, query string) ([]domain.Topic, error) {
	pattern := likePattern(query)

	var topics []domain.Topic
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Find(&topics).Error
	if err != nil {
		log.Printf("[TopicRepository] Database error searching topics for %q: %v", query, err)
		return nil, errors.New("database error searching topics")
	}
	return topics, nil
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
