package chat

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

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.Chat{Title: "Chat • Aug 29, 10:00 AM"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Chat{Title: "Chat • Aug 29, 10:01 AM"})
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestFindAllNewestFirst(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	ctx := context.Background()

	a, err := repo.Create(ctx, &domain.Chat{Title: "first"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &domain.Chat{Title: "second"})
	require.NoError(t, err)

	chats, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, b.ID, chats[0].ID)
	assert.Equal(t, a.ID, chats[1].ID)
}

func TestFindLatest(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.FindLatest(ctx)
	assert.ErrorIs(t, err, ErrChatNotFound)

	_, err = repo.Create(ctx, &domain.Chat{Title: "older"})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &domain.Chat{Title: "newer"})
	require.NoError(t, err)

	latest, err := repo.FindLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestExistsByID(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{Title: "hello"})
	require.NoError(t, err)

	exists, err := repo.ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, created.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRenameIfTitlePrefixRenamesOnce(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{Title: domain.DefaultTitlePrefix + "Aug 29, 10:00 AM"})
	require.NoError(t, err)

	renamed, err := repo.RenameIfTitlePrefix(ctx, created.ID, domain.DefaultTitlePrefix, "What is Go?")
	require.NoError(t, err)
	assert.True(t, renamed)

	// Title no longer carries the prefix, so a second attempt is a no-op.
	renamed, err = repo.RenameIfTitlePrefix(ctx, created.ID, domain.DefaultTitlePrefix, "Another question")
	require.NoError(t, err)
	assert.False(t, renamed)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", got.Title)
}

func TestDeleteWithMessagesLeavesNoOrphans(t *testing.T) {
	db := openTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{Title: "doomed"})
	require.NoError(t, err)

	msgs := []domain.Message{
		{ChatID: created.ID, Sender: domain.SenderAI, Text: "hello"},
		{ChatID: created.ID, Sender: domain.SenderUser, Text: "hi"},
	}
	require.NoError(t, db.Create(&msgs).Error)

	require.NoError(t, repo.DeleteWithMessages(ctx, created.ID))

	var chatCount, messageCount int64
	require.NoError(t, db.Model(&domain.Chat{}).Count(&chatCount).Error)
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", created.ID).Count(&messageCount).Error)
	assert.Zero(t, chatCount)
	assert.Zero(t, messageCount)
}
