//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"lingualink/domain/chat"
	apperrors "lingualink/errors"
)

type IRoomRepository interface {
	CreateOrReuseRoom(userIDs []uuid.UUID) (chat.Room, error)
	GetRoom(roomID chat.RoomID) (chat.Room, error)
	VerifyMembership(userID uuid.UUID, roomID chat.RoomID) (bool, error)
	ListUserRooms(userID uuid.UUID) ([]chat.RoomPreview, error)
	TouchRoom(roomID chat.RoomID, at time.Time) error
}

type RoomRepository struct {
	db       *badger.DB
	users    IUserRepository
	messages IMessageRepository
}

func NewRoomRepository(db *badger.DB, users IUserRepository, messages IMessageRepository) IRoomRepository {
	return &RoomRepository{db: db, users: users, messages: messages}
}

// diskRoom is the persisted shape. Member languages are never stored here:
// they are resolved from the user records on every read so a preference
// change is visible immediately.
type diskRoom struct {
	ID        chat.RoomID `json:"id"`
	MemberIDs []uuid.UUID `json:"memberIds"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func roomKey(id chat.RoomID) []byte { return []byte("room:" + id.String()) }

func userRoomKey(userID uuid.UUID, roomID chat.RoomID) []byte {
	return []byte("user_rooms:" + userID.String() + ":" + roomID.String())
}

// memberSetKey is the canonical identity of a member set: de-duplicated,
// order-independent. Two createOrReuse calls with the same set always land
// on the same key.
func memberSetKey(userIDs []uuid.UUID) ([]byte, []uuid.UUID) {
	unique := lo.Uniq(userIDs)
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})
	ids := lo.Map(unique, func(id uuid.UUID, _ int) string { return id.String() })
	return []byte("roomset:" + strings.Join(ids, ",")), unique
}

// CreateOrReuseRoom returns the existing room holding exactly this member
// set, or creates one. Membership is immutable afterwards.
func (r RoomRepository) CreateOrReuseRoom(userIDs []uuid.UUID) (chat.Room, error) {
	setKey, members := memberSetKey(userIDs)
	if len(members) == 0 {
		return chat.Room{}, fmt.Errorf("room needs at least one member")
	}

	var roomID chat.RoomID
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(setKey)
		if err == nil {
			return item.Value(func(val []byte) error {
				parsed, err := uuid.Parse(string(val))
				if err != nil {
					return err
				}
				roomID = parsed
				return nil
			})
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		roomID = uuid.New()
		now := time.Now().UTC()
		data, err := json.Marshal(diskRoom{
			ID:        roomID,
			MemberIDs: members,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		if err := txn.Set(setKey, []byte(roomID.String())); err != nil {
			return err
		}
		if err := txn.Set(roomKey(roomID), data); err != nil {
			return err
		}
		for _, member := range members {
			if err := txn.Set(userRoomKey(member, roomID), []byte{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return chat.Room{}, err
	}
	return r.GetRoom(roomID)
}

// GetRoom loads the room and resolves each member's current username and
// language preference from the user records.
func (r RoomRepository) GetRoom(roomID chat.RoomID) (chat.Room, error) {
	var disk diskRoom
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(roomID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &disk)
		})
	})
	if err == badger.ErrKeyNotFound {
		return chat.Room{}, apperrors.ErrRoomNotFound
	}
	if err != nil {
		return chat.Room{}, err
	}

	members := make([]chat.Member, 0, len(disk.MemberIDs))
	for _, id := range disk.MemberIDs {
		user, err := r.users.GetUserByID(id)
		if err != nil {
			// A deleted account still counts as a member slot; it simply
			// has no language and receives nothing.
			members = append(members, chat.Member{ID: id})
			continue
		}
		members = append(members, chat.Member{
			ID:       user.ID,
			Username: user.Username,
			Language: user.Language,
		})
	}

	return chat.Room{
		ID:        disk.ID,
		Members:   members,
		CreatedAt: disk.CreatedAt,
		UpdatedAt: disk.UpdatedAt,
	}, nil
}

func (r RoomRepository) VerifyMembership(userID uuid.UUID, roomID chat.RoomID) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(userRoomKey(userID, roomID))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListUserRooms returns every room the user belongs to, most recently active
// first, each with the latest message as the user would see it.
func (r RoomRepository) ListUserRooms(userID uuid.UUID) ([]chat.RoomPreview, error) {
	var roomIDs []chat.RoomID
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte("user_rooms:" + userID.String() + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw := string(it.Item().Key()[len(prefix):])
			id, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			roomIDs = append(roomIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	previews := make([]chat.RoomPreview, 0, len(roomIDs))
	for _, id := range roomIDs {
		room, err := r.GetRoom(id)
		if err != nil {
			return nil, err
		}
		last, err := r.messages.LatestForViewer(id, userID)
		if err != nil {
			return nil, err
		}
		previews = append(previews, chat.RoomPreview{Room: room, LastMessage: last})
	}

	sort.Slice(previews, func(i, j int) bool {
		return previews[i].Room.UpdatedAt.After(previews[j].Room.UpdatedAt)
	})
	return previews, nil
}

// TouchRoom bumps the room's last-activity timestamp. Called once per send,
// after the fan-out settles.
func (r RoomRepository) TouchRoom(roomID chat.RoomID, at time.Time) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(roomID))
		if err == badger.ErrKeyNotFound {
			return apperrors.ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		var disk diskRoom
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &disk)
		}); err != nil {
			return err
		}

		disk.UpdatedAt = at
		data, err := json.Marshal(disk)
		if err != nil {
			return err
		}
		return txn.Set(roomKey(roomID), data)
	})
}
