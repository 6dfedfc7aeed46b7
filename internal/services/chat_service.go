// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shayanh/go-chatbox/internal/domain"
	"github.com/shayanh/go-chatbox/internal/repository/chat"
	"github.com/shayanh/go-chatbox/internal/repository/message"
)

// ErrChatNotFound is returned when a referenced chat id does not exist.
var ErrChatNotFound = chat.ErrChatNotFound

const (
	greetingText = "Hey there! 👋 I'm your AI assistant. Ask me anything and I'll do my best to help! 🚀"

	// failSoftPrefix starts every stored reply produced from a completion
	// failure. The chat flow always stores a displayable string, never an
	// error.
	failSoftPrefix = "Sorry, I encountered an error: "

	// titleMaxLen caps the chat title derived from the first user message.
	titleMaxLen = 35
)

// Completer is the completion dependency of the chat service.
type Completer interface {
	Complete(ctx context.Context, userMessage string) (string, error)
}

// ChatService implements the conversation use cases on top of the
// repositories and the completion client. It holds no per-request state.
type ChatService struct {
	chatRepo    chat.ChatRepository
	messageRepo message.MessageRepository
	completions Completer
	logger      Logger
}

func NewChatService(
	chatRepo chat.ChatRepository,
	messageRepo message.MessageRepository,
	completions Completer,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, errors.New("chat repository is required")
	}
	if messageRepo == nil {
		return nil, errors.New("message repository is required")
	}
	if completions == nil {
		return nil, errors.New("completion service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		completions: completions,
		logger:      logger,
	}, nil
}

// StartChat creates a chat with a timestamped placeholder title and seeds it
// with the assistant greeting.
func (s *ChatService) StartChat(ctx context.Context) (*domain.Chat, error) {
	title := domain.DefaultTitlePrefix + time.Now().Format("Jan 2, 3:04 PM")

	newChat, err := s.chatRepo.Create(ctx, &domain.Chat{Title: title})
	if err != nil {
		return nil, err
	}

	greeting := &domain.Message{
		ChatID: newChat.ID,
		Sender: domain.SenderAI,
		Text:   greetingText,
	}
	if _, err := s.messageRepo.Create(ctx, greeting); err != nil {
		return nil, err
	}

	s.logger.Info("chat started", "chat_id", newChat.ID)
	return newChat, nil
}

// SendMessage appends the user's turn, obtains a reply, appends it, and
// renames the chat after its first user message. A whitespace-only message is
// a silent no-op. Completion failures are stored fail-soft as the reply text.
func (s *ChatService) SendMessage(ctx context.Context, chatID uint, rawText string) error {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil
	}

	exists, err := s.chatRepo.ExistsByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrChatNotFound
	}

	userMsg := &domain.Message{ChatID: chatID, Sender: domain.SenderUser, Text: text}
	if _, err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return err
	}

	reply, err := s.completions.Complete(ctx, text)
	if err != nil {
		// Fail-soft contract: the error becomes the reply, the turn still
		// completes.
		reply = failSoftPrefix + err.Error()
	}

	aiMsg := &domain.Message{ChatID: chatID, Sender: domain.SenderAI, Text: reply}
	if _, err := s.messageRepo.Create(ctx, aiMsg); err != nil {
		return err
	}

	renamed, err := s.chatRepo.RenameIfTitlePrefix(ctx, chatID, domain.DefaultTitlePrefix, deriveTitle(text))
	if err != nil {
		return err
	}
	if renamed {
		s.logger.Debug("chat renamed from first message", "chat_id", chatID)
	}

	return nil
}

// ListChats returns every chat, newest-created first.
func (s *ChatService) ListChats(ctx context.Context) ([]domain.Chat, error) {
	return s.chatRepo.FindAll(ctx)
}

// ChatMessages returns a chat's history oldest-first.
func (s *ChatService) ChatMessages(ctx context.Context, chatID uint) ([]domain.Message, error) {
	return s.messageRepo.FindByChatID(ctx, chatID)
}

func (s *ChatService) ChatExists(ctx context.Context, chatID uint) (bool, error) {
	return s.chatRepo.ExistsByID(ctx, chatID)
}

// LatestChat returns the most-recently-created chat, or ErrChatNotFound when
// none exist.
func (s *ChatService) LatestChat(ctx context.Context) (*domain.Chat, error) {
	return s.chatRepo.FindLatest(ctx)
}

// DeleteChat removes the chat and all of its messages atomically.
func (s *ChatService) DeleteChat(ctx context.Context, chatID uint) error {
	if err := s.chatRepo.DeleteWithMessages(ctx, chatID); err != nil {
		return err
	}
	s.logger.Info("chat deleted", "chat_id", chatID)
	return nil
}

// deriveTitle shortens the first user message into a display title, appending
// an ellipsis marker when truncated.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleMaxLen {
		return text
	}
	return string(runes[:titleMaxLen]) + "..."
}
