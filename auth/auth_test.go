package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "lingualink/errors"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test_secret_for_units_only", time.Hour)

	token, err := issuer.Generate("user-42", "alice@example.com")
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("user-42", claims.UserID)
	req.Equal("alice@example.com", claims.Email)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test_secret_for_units_only", -time.Minute)

	token, err := issuer.Generate("user-42", "alice@example.com")
	req.NoError(err)

	_, err = issuer.Validate(token)
	req.ErrorIs(err, apperrors.ErrInvalidToken)
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("secret_a_secret_a_secret", time.Hour)
	other := NewTokenIssuer("secret_b_secret_b_secret", time.Hour)

	token, err := other.Generate("user-42", "alice@example.com")
	req.NoError(err)

	_, err = issuer.Validate(token)
	req.ErrorIs(err, apperrors.ErrInvalidToken)
}

func TestHashAndComparePassword(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("Sup3r$ecretPassword")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	ok, err := ComparePassword("Sup3r$ecretPassword", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = ComparePassword("wrong-password", hash)
	req.NoError(err)
	req.False(ok)
}

func TestValidateRegister(t *testing.T) {
	valid := RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Compl3xPassword!",
		Language: "en",
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		require.NoError(t, ValidateRegister(valid))
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		r := valid
		r.Password = "alllowercaseonly"
		require.ErrorIs(t, ValidateRegister(r), apperrors.ErrInvalidPassword)
	})

	t.Run("rejects an unsupported language", func(t *testing.T) {
		r := valid
		r.Language = "xx"
		require.ErrorIs(t, ValidateRegister(r), apperrors.ErrUnsupportedLanguage)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		r := valid
		r.Email = "not-an-email"
		require.Error(t, ValidateRegister(r))
	})
}
