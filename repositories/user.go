//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	apperrors "lingualink/errors"
)

type IUserRepository interface {
	CreateUser(email, username, hashedPassword, language string) (User, error)
	GetUserByEmail(email string) (User, error)
	GetUserByID(id uuid.UUID) (User, error)
	UpdateLanguage(id uuid.UUID, language string) error
	SearchUsers(query string, limit int) ([]User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the repository-level representation of an account. Language is the
// short tag driving per-recipient translation; it can change at any moment,
// which is why the send pipeline re-reads it instead of caching it on the
// connection.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Language     string    `json:"language"`
	CreatedAt    time.Time `json:"createdAt"`
}

func userKey(email string) []byte   { return []byte("user:" + email) }
func userIDKey(id uuid.UUID) []byte { return []byte("userid:" + id.String()) }

// CreateUser persists a new account. The primary record is keyed by email;
// a secondary "userid:" entry points back to it for id lookups.
func (u UserRepository) CreateUser(email, username, hashedPassword, language string) (User, error) {
	user := User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		Language:     language,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(email)); err == nil {
			return apperrors.ErrUserAlreadyExists
		}
		if err := txn.Set(userKey(email), data); err != nil {
			return err
		}
		return txn.Set(userIDKey(user.ID), []byte(email))
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (u UserRepository) GetUserByEmail(email string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err == badger.ErrKeyNotFound {
		return User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (u UserRepository) GetUserByID(id uuid.UUID) (User, error) {
	var email string
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userIDKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			email = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u.GetUserByEmail(email)
}

// UpdateLanguage swaps the stored preference tag. Live sessions pick the new
// value up on their next send because member languages are re-fetched there.
func (u UserRepository) UpdateLanguage(id uuid.UUID, language string) error {
	user, err := u.GetUserByID(id)
	if err != nil {
		return err
	}
	user.Language = language

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return u.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(user.Email), data)
	})
}

// SearchUsers returns up to limit accounts whose username contains the query,
// case-insensitively.
func (u UserRepository) SearchUsers(query string, limit int) ([]User, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	var users []User
	err := u.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("user:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if len(users) == limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var user User
				if err := json.Unmarshal(val, &user); err != nil {
					return err
				}
				if strings.Contains(strings.ToLower(user.Username), needle) {
					users = append(users, user)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return users, err
}
