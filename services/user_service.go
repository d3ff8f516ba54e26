//go:generate go run go.uber.org/mock/mockgen -source=user_service.go -destination=../mocks/mock_user_service.go -package=mocks
package services

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"lingualink/errors"
	"lingualink/repositories"
	"lingualink/translation"
)

// Directory search is intentionally small: the UI shows a handful of
// candidates while typing.
const userSearchLimit = 4

type IUserService interface {
	UpdateLanguage(userID uuid.UUID, language string) (repositories.User, error)
	SearchUsers(query string, requesterID uuid.UUID) ([]PublicUser, error)
}

// PublicUser is the directory view of an account, stripped of credentials.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Language string    `json:"language"`
}

type UserService struct {
	userRepository repositories.IUserRepository
}

func NewUserService(repo repositories.IUserRepository) IUserService {
	return &UserService{userRepository: repo}
}

func (s *UserService) UpdateLanguage(userID uuid.UUID, language string) (repositories.User, error) {
	if !translation.IsSupported(language) {
		return repositories.User{}, errors.ErrUnsupportedLanguage
	}
	if err := s.userRepository.UpdateLanguage(userID, language); err != nil {
		return repositories.User{}, err
	}
	return s.userRepository.GetUserByID(userID)
}

// SearchUsers never returns the requester among the candidates. The
// repository is asked for one extra row so self-exclusion cannot shrink
// the page below the limit.
func (s *UserService) SearchUsers(query string, requesterID uuid.UUID) ([]PublicUser, error) {
	users, err := s.userRepository.SearchUsers(query, userSearchLimit+1)
	if err != nil {
		return nil, err
	}
	users = lo.Filter(users, func(u repositories.User, _ int) bool {
		return u.ID != requesterID
	})
	if len(users) > userSearchLimit {
		users = users[:userSearchLimit]
	}
	return lo.Map(users, func(u repositories.User, _ int) PublicUser {
		return PublicUser{ID: u.ID, Email: u.Email, Username: u.Username, Language: u.Language}
	}), nil
}
