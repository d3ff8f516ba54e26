//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"lingualink/domain/chat"
)

type IMessageRepository interface {
	StoreMessage(message chat.Message) error
	ListMessages(room chat.RoomID, viewerID uuid.UUID, cursor *string) ([]chat.Message, *string, error)
	LatestForViewer(room chat.RoomID, viewerID uuid.UUID) (*chat.Message, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// StoreMessage persists one copy of a send event. The key is formatted as
// "msg:{room}:{timestamp_padded}:{event}:{recipient}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Keep every per-recipient variant of one event adjacent and
//     individually addressable, with the shared event id as the
//     correlation key.
func (m MessageRepository) StoreMessage(message chat.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%s:%s",
		message.RoomID,
		message.CreatedAt.UnixNano(),
		message.EventID,
		message.RecipientID,
	)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// ListMessages retrieves the room history as one specific viewer should see
// it: exactly one row per send event, the row addressed to that viewer.
// Thanks to the padded timestamp in the key, rows come back newest first.
// Collection stops once the configured limitMessages is reached; the cursor
// resumes a previous scan. A nil cursor comes back when the scan drained the
// room, so callers only page on while rows remain.
func (m MessageRepository) ListMessages(room chat.RoomID, viewerID uuid.UUID, cursor *string) ([]chat.Message, *string, error) {
	var collected []chat.Message
	var lastKey string
	var truncated bool

	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", room)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible timestamp, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(collected) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				truncated = true
				break
			}
			item := it.Item()
			var message chat.Message
			err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &message)
			})
			if err != nil {
				return err
			}
			if message.RecipientID != viewerID {
				continue
			}
			// Memorize the cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			collected = append(collected, message)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !truncated || len(collected) == 0 {
		return collected, nil, nil
	}
	return collected, &lastKey, nil
}

// LatestForViewer returns the newest message addressed to the viewer in a
// room, or nil when the room has no history for them yet.
func (m MessageRepository) LatestForViewer(room chat.RoomID, viewerID uuid.UUID) (*chat.Message, error) {
	one := 1
	scoped := MessageRepository{db: m.db, log: m.log, limitMessages: &one}
	messages, _, err := scoped.ListMessages(room, viewerID, nil)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}
