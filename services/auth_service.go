//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"fmt"

	"github.com/google/uuid"

	"lingualink/auth"
	"lingualink/errors"
	"lingualink/repositories"
)

type IAuthService interface {
	Register(email, username, password, language string) (Account, error)
	Login(email, password string) (Account, error)
	Authenticate(token string) (repositories.User, error)
}

type AuthService struct {
	userRepository repositories.IUserRepository
	tokens         *auth.TokenIssuer
}

// Account pairs the stored user with a fresh session token.
type Account struct {
	User  repositories.User
	Token Token
}

type Token string

func NewAuthService(repo repositories.IUserRepository, tokens *auth.TokenIssuer) IAuthService {
	return &AuthService{userRepository: repo, tokens: tokens}
}

func (s *AuthService) Register(email, username, password, language string) (Account, error) {
	valReq := auth.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
		Language: language,
	}

	// 1. Validate business rules (email format, password complexity,
	// supported language) before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return Account{}, fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	// 2. Hash the password using Argon2id.
	// Done in the service layer to keep the repository unaware of plain passwords.
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return Account{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist the user with the generated hash.
	user, err := s.userRepository.CreateUser(email, username, hashedPassword, language)
	if err != nil {
		return Account{}, err // Will propagate ErrUserAlreadyExists if email is taken
	}

	// 4. Generate the initial session token.
	token, err := s.tokens.Generate(user.ID.String(), user.Email)
	if err != nil {
		return Account{}, errors.ErrTokenGeneration
	}

	return Account{User: user, Token: Token(token)}, nil
}

func (s *AuthService) Login(email, password string) (Account, error) {
	// 1. Retrieve user by email from storage.
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration attacks
		return Account{}, errors.ErrInvalidCredentials
	}

	// 2. Compare the provided password with the stored hash.
	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return Account{}, errors.ErrInvalidCredentials
	}

	// 3. Issue the JWT token.
	token, err := s.tokens.Generate(user.ID.String(), user.Email)
	if err != nil {
		return Account{}, errors.ErrTokenGeneration
	}

	return Account{User: user, Token: Token(token)}, nil
}

// Authenticate resolves a bearer token to the stored user. Token claims
// are not trusted for profile data, only for identity.
func (s *AuthService) Authenticate(token string) (repositories.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return repositories.User{}, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return repositories.User{}, errors.ErrInvalidToken
	}
	return s.userRepository.GetUserByID(userID)
}
