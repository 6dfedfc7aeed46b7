package chat

import (
	"context"

	"github.com/shayanh/go-chatbox/internal/domain"
)

// ChatRepository handles chat data operations.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	// FindAll returns every chat, newest-created first.
	FindAll(ctx context.Context) ([]domain.Chat, error)
	// FindLatest returns the most-recently-created chat, or ErrChatNotFound
	// when the store is empty.
	FindLatest(ctx context.Context) (*domain.Chat, error)
	ExistsByID(ctx context.Context, chatID uint) (bool, error)
	// RenameIfTitlePrefix sets the chat title to newTitle only if the current
	// title still starts with prefix. The check-and-set is a single UPDATE so
	// concurrent first sends cannot both rename. Reports whether a rename
	// happened.
	RenameIfTitlePrefix(ctx context.Context, chatID uint, prefix, newTitle string) (bool, error)
	// DeleteWithMessages removes the chat and all of its messages in one
	// transaction.
	DeleteWithMessages(ctx context.Context, chatID uint) error
}
