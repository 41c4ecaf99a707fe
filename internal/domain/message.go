// File: internal/domain/message.go
package domain

import "time"

// Message is a single post inside a room. Author and room are fixed at
// creation; only the body may change afterwards, and only by the author.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      User      `json:"user"`
	RoomID    uint      `json:"room_id" gorm:"not null"`
	Room      Room      `json:"room"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAuthoredBy reports whether userID wrote the message.
func (m *Message) IsAuthoredBy(userID uint) bool {
	return m.UserID == userID
}
