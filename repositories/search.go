//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_search_repository.go -package=mocks
package repositories

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"

	"lingualink/domain/chat"
)

type ISearchRepository interface {
	Index(message chat.Message) error
	Search(ctx context.Context, room chat.RoomID, terms string, limit int) ([]SearchHit, uint64, error)
}

// SearchRepository maintains a full-text index over original message texts.
// Only the sender's copy of each event is indexed, so one send appears once
// regardless of how many translated variants were persisted.
type SearchRepository struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewSearchRepository(writer *bluge.Writer, log *slog.Logger) *SearchRepository {
	return &SearchRepository{writer: writer, log: log}
}

type SearchHit struct {
	MessageID uuid.UUID
	EventID   uuid.UUID
	RoomID    chat.RoomID
	SenderID  uuid.UUID
	Text      string
}

func (s *SearchRepository) Index(message chat.Message) error {
	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewKeywordField("room", message.RoomID.String()).StoreValue()).
		AddField(bluge.NewKeywordField("event", message.EventID.String()).StoreValue()).
		AddField(bluge.NewKeywordField("sender", message.SenderID.String()).StoreValue()).
		AddField(bluge.NewTextField("text", message.Text).StoreValue())

	return s.writer.Update(doc.ID(), doc)
}

// Search runs a match query scoped to one room and returns the stored hits
// plus the total match count.
func (s *SearchRepository) Search(ctx context.Context, room chat.RoomID, terms string, limit int) ([]SearchHit, uint64, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Warn("Failed to close bluge reader", "err", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("text")).
		AddMust(bluge.NewTermQuery(room.String()).SetField("room"))

	request := bluge.NewTopNSearch(limit, query).WithStandardAggregations()
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	var hits []SearchHit
	match, err := iterator.Next()
	for err == nil && match != nil {
		var hit SearchHit
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID, _ = uuid.Parse(string(value))
			case "event":
				hit.EventID, _ = uuid.Parse(string(value))
			case "room":
				hit.RoomID, _ = uuid.Parse(string(value))
			case "sender":
				hit.SenderID, _ = uuid.Parse(string(value))
			case "text":
				hit.Text = string(value)
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, 0, err
	}

	return hits, iterator.Aggregations().Count(), nil
}
