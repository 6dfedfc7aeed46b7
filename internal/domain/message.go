// File: internal/domain/message.go
package domain

import "time"

// Message sender values. Messages are immutable once created.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message represents a single turn within a chat.
type Message struct {
	ID        uint   `gorm:"primarykey"`
	ChatID    uint   `json:"chat_id" gorm:"index;not null"` // The ID of the chat this message belongs to
	Sender    string `json:"sender" gorm:"not null"`        // "user" or "ai"
	Text      string `json:"text" gorm:"not null"`
	CreatedAt time.Time
}
