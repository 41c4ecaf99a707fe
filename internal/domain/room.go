// File: internal/domain/room.go
package domain

import "time"

// Room is a discussion thread hosted by a single user and tagged with one
// topic. Participants is the set of users who have posted in the room; it
// grows as messages are created and is cleared when the room is deleted.
type Room struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	HostID       uint      `json:"host_id" gorm:"not null"` // immutable after creation
	Host         User      `json:"host"`
	TopicID      uint      `json:"topic_id" gorm:"not null"`
	Topic        Topic     `json:"topic"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Participants []User    `json:"participants" gorm:"many2many:room_participants;"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsHostedBy reports whether userID is the host of the room. Only the host
// may update or delete a room.
func (r *Room) IsHostedBy(userID uint) bool {
	return r.HostID == userID
}
