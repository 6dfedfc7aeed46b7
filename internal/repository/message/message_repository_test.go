package message

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shayanh/go-chatbox/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Chat{}, &domain.Message{}))

	return db
}

func TestCreateAndFindByChatIDOrdering(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Message{ChatID: 1, Sender: domain.SenderAI, Text: "greeting"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Message{ChatID: 1, Sender: domain.SenderUser, Text: "question"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Message{ChatID: 2, Sender: domain.SenderUser, Text: "other chat"})
	require.NoError(t, err)

	messages, err := repo.FindByChatID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "greeting", messages[0].Text)
	assert.Equal(t, "question", messages[1].Text)
	assert.False(t, messages[1].CreatedAt.Before(messages[0].CreatedAt))
}

func TestFindByChatIDUnknownChatIsEmpty(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))

	messages, err := repo.FindByChatID(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestCountByChatID(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &domain.Message{ChatID: 7, Sender: domain.SenderUser, Text: "msg"})
		require.NoError(t, err)
	}

	count, err := repo.CountByChatID(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestCreateValidation(t *testing.T) {
	repo := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Message{ChatID: 0, Sender: domain.SenderUser, Text: "no chat"})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &domain.Message{ChatID: 1, Sender: "robot", Text: "bad sender"})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &domain.Message{ChatID: 1, Sender: domain.SenderUser, Text: "   "})
	assert.Error(t, err)
}
