package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"lingualink/domain/chat"
)

// storeEvent persists one send event the way the router does: one row for
// the sender's untranslated copy and one row per recipient variant.
func storeEvent(t *testing.T, repo MessageRepository, room chat.RoomID, sender uuid.UUID, text string, at time.Time, variants map[uuid.UUID]string) uuid.UUID {
	t.Helper()
	eventID := uuid.New()
	require.NoError(t, repo.StoreMessage(chat.Message{
		ID:          uuid.New(),
		EventID:     eventID,
		RoomID:      room,
		SenderID:    sender,
		RecipientID: sender,
		Text:        text,
		CreatedAt:   at,
	}))
	for recipient, translated := range variants {
		require.NoError(t, repo.StoreMessage(chat.Message{
			ID:             uuid.New(),
			EventID:        eventID,
			RoomID:         room,
			SenderID:       sender,
			RecipientID:    recipient,
			Text:           text,
			TranslatedText: translated,
			TranslationOK:  true,
			CreatedAt:      at,
		}))
	}
	return eventID
}

func TestMessageRepository_PerViewerReconciliation(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(setupBadger(t), slog.Default(), nil)

	room := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	at := time.Now().UTC()

	eventID := storeEvent(t, repo, room, alice, "hello", at, map[uuid.UUID]string{bob: "hola"})

	// Alice sees her untranslated copy, exactly once.
	aliceView, _, err := repo.ListMessages(room, alice, nil)
	req.NoError(err)
	req.Len(aliceView, 1)
	req.Equal("hello", aliceView[0].DisplayText())
	req.Equal(eventID, aliceView[0].EventID)

	// Bob sees the Spanish variant of the same event.
	bobView, _, err := repo.ListMessages(room, bob, nil)
	req.NoError(err)
	req.Len(bobView, 1)
	req.Equal("hola", bobView[0].DisplayText())
	req.Equal(eventID, bobView[0].EventID)
}

func TestMessageRepository_SortedNewestFirst(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(setupBadger(t), slog.Default(), nil)

	room := uuid.New()
	alice := uuid.New()
	at := time.Now().UTC()

	storeEvent(t, repo, room, alice, "first", at, nil)
	storeEvent(t, repo, room, alice, "second", at.Add(time.Minute), nil)
	storeEvent(t, repo, room, alice, "third", at.Add(2*time.Minute), nil)

	messages, cursor, err := repo.ListMessages(room, alice, nil)
	req.NoError(err)
	req.Len(messages, 3)
	req.Equal("third", messages[0].Text)
	req.Equal("second", messages[1].Text)
	req.Equal("first", messages[2].Text)

	// Without a limit the single page drains the room.
	req.Nil(cursor)
}

func TestMessageRepository_LimitAndCursor(t *testing.T) {
	req := require.New(t)
	limit := 2
	repo := NewMessageRepository(setupBadger(t), slog.Default(), &limit)

	room := uuid.New()
	alice := uuid.New()
	at := time.Now().UTC()

	for i, text := range []string{"one", "two", "three"} {
		storeEvent(t, repo, room, alice, text, at.Add(time.Duration(i)*time.Minute), nil)
	}

	page, cursor, err := repo.ListMessages(room, alice, nil)
	req.NoError(err)
	req.Len(page, limit)
	req.Equal("three", page[0].Text)
	req.Equal("two", page[1].Text)
	req.NotNil(cursor)

	rest, cursor, err := repo.ListMessages(room, alice, cursor)
	req.NoError(err)
	req.Len(rest, 1)
	req.Equal("one", rest[0].Text)

	// The last page carries no cursor, so callers know to stop paging.
	req.Nil(cursor)
}

func TestMessageRepository_LatestForViewer(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(setupBadger(t), slog.Default(), nil)

	room := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	at := time.Now().UTC()

	latest, err := repo.LatestForViewer(room, alice)
	req.NoError(err)
	req.Nil(latest)

	storeEvent(t, repo, room, alice, "old", at, map[uuid.UUID]string{bob: "viejo"})
	storeEvent(t, repo, room, alice, "new", at.Add(time.Minute), map[uuid.UUID]string{bob: "nuevo"})

	latest, err = repo.LatestForViewer(room, bob)
	req.NoError(err)
	req.NotNil(latest)
	req.Equal("nuevo", latest.DisplayText())
}
