package message

import (
	"context"

	"github.com/shayanh/go-chatbox/internal/domain"
)

// MessageRepository handles message data operations.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// FindByChatID returns the chat's messages oldest-first. An unknown chat
	// ID yields an empty slice, not an error.
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID uint) (int64, error)
}
