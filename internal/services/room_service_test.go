// File: internal/services/room_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roomhub/go-roomhub/internal/domain"
	"github.com/roomhub/go-roomhub/internal/repository/message"
	"github.com/roomhub/go-roomhub/internal/repository/room"
	"github.com/roomhub/go-roomhub/internal/repository/topic"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Topic{}, &domain.Room{}, &domain.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newRoomService(t *testing.T, db *gorm.DB) *RoomService {
	t.Helper()
	return NewRoomService(
		room.NewRoomRepository(db),
		topic.NewTopicRepository(db),
		message.NewMessageRepository(db),
		&NoOpLogger{},
	)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func TestRoomService_CreateRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(t, db)
	ctx := context.Background()

	host := seedUser(t, db, "alice")

	first, err := svc.CreateRoom(ctx, host.ID, "Goroutines", "concurrency talk", "Go")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected created room to have an ID")
	}

	t.Run("reuses an existing topic", func(t *testing.T) {
		second, err := svc.CreateRoom(ctx, host.ID, "Channels", "", "Go")
		if err != nil {
			t.Fatalf("CreateRoom() error = %v", err)
		}
		if second.TopicID != first.TopicID {
			t.Errorf("expected topic ID %d, got %d", first.TopicID, second.TopicID)
		}

		var count int64
		if err := db.Model(&domain.Topic{}).Count(&count).Error; err != nil {
			t.Fatalf("counting topics: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 topic, got %d", count)
		}
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(t, db)
	ctx := context.Background()

	host := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	created, err := svc.CreateRoom(ctx, host.ID, "Goroutines", "", "Go")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	t.Run("non-host is forbidden", func(t *testing.T) {
		err := svc.UpdateRoom(ctx, created.ID, other.ID, "Hijacked", "", "Go")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("host updates name and topic", func(t *testing.T) {
		if err := svc.UpdateRoom(ctx, created.ID, host.ID, "Channels", "buffered vs unbuffered", "Concurrency"); err != nil {
			t.Fatalf("UpdateRoom() error = %v", err)
		}

		updated, err := svc.GetRoom(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetRoom() error = %v", err)
		}
		if updated.Name != "Channels" {
			t.Errorf("expected name Channels, got %q", updated.Name)
		}
		if updated.Topic.Name != "Concurrency" {
			t.Errorf("expected topic Concurrency, got %q", updated.Topic.Name)
		}
		if updated.HostID != host.ID {
			t.Errorf("host must not change, got %d", updated.HostID)
		}
	})

	t.Run("missing room", func(t *testing.T) {
		err := svc.UpdateRoom(ctx, 9999, host.ID, "X", "", "Go")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRoomService_DeleteRoom(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(t, db)
	ctx := context.Background()

	host := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	created, err := svc.CreateRoom(ctx, host.ID, "Goroutines", "", "Go")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	if _, err := svc.PostMessage(ctx, created.ID, other.ID, "hello"); err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}

	t.Run("non-host is forbidden", func(t *testing.T) {
		if err := svc.DeleteRoom(ctx, created.ID, other.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("host deletes room with messages", func(t *testing.T) {
		if err := svc.DeleteRoom(ctx, created.ID, host.ID); err != nil {
			t.Fatalf("DeleteRoom() error = %v", err)
		}

		if _, err := svc.GetRoom(ctx, created.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		var count int64
		if err := db.Model(&domain.Message{}).Where("room_id = ?", created.ID).Count(&count).Error; err != nil {
			t.Fatalf("counting messages: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 messages after delete, got %d", count)
		}
	})
}

func TestRoomService_PostMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(t, db)
	roomRepo := room.NewRoomRepository(db)
	ctx := context.Background()

	host := seedUser(t, db, "alice")
	author := seedUser(t, db, "bob")

	created, err := svc.CreateRoom(ctx, host.ID, "Goroutines", "", "Go")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	if _, err := svc.PostMessage(ctx, created.ID, author.ID, "first"); err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}

	t.Run("author becomes a participant once", func(t *testing.T) {
		if _, err := svc.PostMessage(ctx, created.ID, author.ID, "second"); err != nil {
			t.Fatalf("PostMessage() error = %v", err)
		}

		participants, err := roomRepo.FindParticipants(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindParticipants() error = %v", err)
		}
		if len(participants) != 1 {
			t.Errorf("expected 1 participant, got %d", len(participants))
		}
	})

	t.Run("missing room", func(t *testing.T) {
		if _, err := svc.PostMessage(ctx, 9999, author.ID, "lost"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRoomService_UpdateMessage(t *testing.T) {
	db := setupTestDB(t)
	svc := newRoomService(t, db)
	ctx := context.Background()

	host := seedUser(t, db, "alice")
	author := seedUser(t, db, "bob")

	created, err := svc.CreateRoom(ctx, host.ID, "Goroutines", "", "Go")
	if err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}
	posted, err := svc.PostMessage(ctx, created.ID, author.ID, "first")
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}

	t.Run("non-author is forbidden", func(t *testing.T) {
		if _, err := svc.UpdateMessage(ctx, posted.ID, host.ID, "edited"); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("author edits body and gets the room back", func(t *testing.T) {
		updated, err := svc.UpdateMessage(ctx, posted.ID, author.ID, "edited")
		if err != nil {
			t.Fatalf("UpdateMessage() error = %v", err)
		}
		if updated.Body != "edited" {
			t.Errorf("expected body edited, got %q", updated.Body)
		}
		if updated.RoomID != created.ID {
			t.Errorf("expected room ID %d, got %d", created.ID, updated.RoomID)
		}
	})

	t.Run("author deletes message", func(t *testing.T) {
		if err := svc.DeleteMessage(ctx, posted.ID, author.ID); err != nil {
			t.Fatalf("DeleteMessage() error = %v", err)
		}
		if _, err := svc.GetMessage(ctx, posted.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})
}
