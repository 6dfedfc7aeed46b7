// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/shayanh/go-chatbox/internal/domain"
)

var ErrChatNotFound = errors.New("chat not found")

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create persists a new chat row and returns it with its assigned ID.
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if err := r.validateChatInput(chat); err != nil {
		log.Printf("[ChatRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		log.Printf("[ChatRepository] Database error during chat creation: %v", err)
		return nil, errors.New("database error creating chat")
	}

	return chat, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, chatID uint) (*domain.Chat, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	return r.handleFindError(err, &chat, "FindByID")
}

// FindAll returns every chat ordered newest-created first.
func (r *gormChatRepository) FindAll(ctx context.Context) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&chats).Error

	if err != nil {
		log.Printf("[ChatRepository] Database error fetching chats: %v", err)
		return nil, errors.New("database error fetching chats")
	}

	return chats, nil
}

func (r *gormChatRepository) FindLatest(ctx context.Context) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&chat).Error
	return r.handleFindError(err, &chat, "FindLatest")
}

// ExistsByID checks existence without loading the row.
func (r *gormChatRepository) ExistsByID(ctx context.Context, chatID uint) (bool, error) {
	if chatID == 0 {
		return false, errors.New("invalid chat ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ?", chatID).Count(&count).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error checking chat existence for ID %d: %v", chatID, err)
		return false, errors.New("database error checking chat existence")
	}

	return count > 0, nil
}

// RenameIfTitlePrefix performs the rename as one conditional UPDATE. With two
// concurrent first sends only one UPDATE matches the prefix guard.
func (r *gormChatRepository) RenameIfTitlePrefix(ctx context.Context, chatID uint, prefix, newTitle string) (bool, error) {
	if chatID == 0 {
		return false, errors.New("invalid chat ID")
	}
	if err := r.validateChatTitle(newTitle); err != nil {
		return false, fmt.Errorf("title validation: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ? AND title LIKE ?", chatID, prefix+"%").
		Update("title", newTitle)

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error renaming chat ID %d: %v", chatID, result.Error)
		return false, errors.New("database error renaming chat")
	}

	return result.RowsAffected > 0, nil
}

// DeleteWithMessages removes all messages for the chat and then the chat row
// itself. Both deletes run in one transaction so a crash cannot leave
// orphaned messages behind.
func (r *gormChatRepository) DeleteWithMessages(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&domain.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Chat{}, chatID).Error
	})

	if err != nil {
		log.Printf("[ChatRepository] Database error deleting chat ID %d: %v", chatID, err)
		return errors.New("database error deleting chat")
	}

	return nil
}

// ===== VALIDATION HELPERS =====

func (r *gormChatRepository) validateChatInput(chat *domain.Chat) error {
	if chat == nil {
		return errors.New("chat cannot be nil")
	}
	return r.validateChatTitle(chat.Title)
}

func (r *gormChatRepository) validateChatTitle(title string) error {
	if len(title) > 200 {
		return errors.New("title must be 200 characters or less")
	}

	// Basic XSS protection
	if strings.Contains(title, "<script") || strings.Contains(title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}

	return nil
}

// ===== ERROR HANDLING HELPERS =====

// handleFindError maps gorm's not-found to the sentinel and hides driver
// detail from callers.
func (r *gormChatRepository) handleFindError(err error, chat *domain.Chat, operation string) (*domain.Chat, error) {
	if err == nil {
		return chat, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}

	log.Printf("[ChatRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
