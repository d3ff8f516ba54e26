package repositories

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"lingualink/domain/chat"
)

func TestSearchRepository_IndexAndSearch(t *testing.T) {
	req := require.New(t)
	repo := NewSearchRepository(setupBluge(t), slog.Default())

	roomA := uuid.New()
	roomB := uuid.New()
	sender := uuid.New()

	store := func(room chat.RoomID, text string) chat.Message {
		msg := chat.Message{
			ID:          uuid.New(),
			EventID:     uuid.New(),
			RoomID:      room,
			SenderID:    sender,
			RecipientID: sender,
			Text:        text,
			CreatedAt:   time.Now().UTC(),
		}
		req.NoError(repo.Index(msg))
		return msg
	}

	indexed := store(roomA, "let us discuss the migration plan")
	store(roomA, "lunch tomorrow?")
	store(roomB, "the migration is delayed")

	hits, total, err := repo.Search(context.Background(), roomA, "migration", 10)
	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(hits, 1)
	req.Equal(indexed.ID, hits[0].MessageID)
	req.Equal(roomA, hits[0].RoomID)
	req.Contains(hits[0].Text, "migration")
}

func TestSearchRepository_NoMatch(t *testing.T) {
	req := require.New(t)
	repo := NewSearchRepository(setupBluge(t), slog.Default())

	hits, total, err := repo.Search(context.Background(), uuid.New(), "anything", 10)
	req.NoError(err)
	req.Zero(total)
	req.Empty(hits)
}
