// File: internal/domain/chat.go
package domain

import (
	"strings"
	"time"
)

// DefaultTitlePrefix marks a chat that has not been renamed yet. A chat keeps
// this prefix until the first non-empty user message replaces the title.
const DefaultTitlePrefix = "Chat • "

// Chat represents a single conversation thread.
type Chat struct {
	ID        uint   `gorm:"primarykey"`
	Title     string // Display title, e.g. "Chat • Aug 29, 10:15 AM"
	CreatedAt time.Time
}

// HasDefaultTitle reports whether the chat still carries the placeholder
// title assigned at creation.
func (c *Chat) HasDefaultTitle() bool {
	return strings.HasPrefix(c.Title, DefaultTitlePrefix)
}
