// File: internal/domain/topic.go
package domain

import "time"

// Topic tags rooms by subject. Topics are created on demand when a room
// references a name that does not exist yet, and are never deleted.
type Topic struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
