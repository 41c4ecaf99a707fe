// File: internal/repository/topic/topic_repository_test.go
package topic

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roomhub/go-roomhub/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Topic{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestTopicRepository_GetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "Go")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected created topic to have an ID")
	}

	t.Run("same name resolves to the same topic", func(t *testing.T) {
		second, err := repo.GetOrCreate(ctx, "Go")
		if err != nil {
			t.Fatalf("GetOrCreate() error = %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("expected topic ID %d, got %d", first.ID, second.ID)
		}

		var count int64
		if err := db.Model(&domain.Topic{}).Count(&count).Error; err != nil {
			t.Fatalf("counting topics: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 topic, got %d", count)
		}
	})

	t.Run("different name creates a new topic", func(t *testing.T) {
		other, err := repo.GetOrCreate(ctx, "Python")
		if err != nil {
			t.Fatalf("GetOrCreate() error = %v", err)
		}
		if other.ID == first.ID {
			t.Error("expected a distinct topic for a different name")
		}
	})
}

func TestTopicRepository_FindFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Go", "Python", "Rust", "Zig", "Elixir"} {
		if _, err := repo.GetOrCreate(ctx, name); err != nil {
			t.Fatalf("GetOrCreate(%q) error = %v", name, err)
		}
	}

	topics, err := repo.FindFirst(ctx, 4)
	if err != nil {
		t.Fatalf("FindFirst() error = %v", err)
	}
	if len(topics) != 4 {
		t.Errorf("expected 4 topics, got %d", len(topics))
	}
}

func TestTopicRepository_SearchByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Go", "Golang jobs", "Python"} {
		if _, err := repo.GetOrCreate(ctx, name); err != nil {
			t.Fatalf("GetOrCreate(%q) error = %v", name, err)
		}
	}

	t.Run("case-insensitive substring", func(t *testing.T) {
		topics, err := repo.SearchByName(ctx, "go")
		if err != nil {
			t.Fatalf("SearchByName() error = %v", err)
		}
		if len(topics) != 2 {
			t.Errorf("expected 2 topics, got %d", len(topics))
		}
	})

	t.Run("empty query matches all", func(t *testing.T) {
		topics, err := repo.SearchByName(ctx, "")
		if err != nil {
			t.Fatalf("SearchByName() error = %v", err)
		}
		if len(topics) != 3 {
			t.Errorf("expected 3 topics, got %d", len(topics))
		}
	})

	t.Run("wildcard characters match literally", func(t *testing.T) {
		for _, q := range []string{"%", "_", "p_thon"} {
			topics, err := repo.SearchByName(ctx, q)
			if err != nil {
				t.Fatalf("SearchByName(%q) error = %v", q, err)
			}
			if len(topics) != 0 {
				t.Errorf("SearchByName(%q): expected 0 topics, got %d", q, len(topics))
			}
		}
	})
}

func TestTopicRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTopicRepository(db)
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "Go")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Go" {
		t.Errorf("expected name Go, got %q", found.Name)
	}

	if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("expected ErrTopicNotFound, got %v", err)
	}
}
