package translation

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lingualink/errors"
)

func TestTranslate_SameLanguage_SkipsBackend(t *testing.T) {
	req := require.New(t)
	backend := NewStubBackend()
	backend.Err = fmt.Errorf("backend must not be called")
	svc := NewService(backend, time.Second, slog.Default())

	res := svc.Translate(context.Background(), "hello", "en", "en")

	req.True(res.Success)
	req.Equal("hello", res.TranslatedText)
	req.NoError(res.Err)
}

func TestTranslate_UnsupportedLanguage_FailsFast(t *testing.T) {
	req := require.New(t)
	backend := NewStubBackend()
	backend.Err = fmt.Errorf("backend must not be called")
	svc := NewService(backend, time.Second, slog.Default())

	res := svc.Translate(context.Background(), "hello", "en", "xx")

	req.False(res.Success)
	req.Equal("hello", res.TranslatedText)
	req.ErrorIs(res.Err, errors.ErrUnsupportedLanguage)
}

func TestTranslate_Success(t *testing.T) {
	req := require.New(t)
	svc := NewService(NewStubBackend(), time.Second, slog.Default())

	res := svc.Translate(context.Background(), "hello", "en", "es")

	req.True(res.Success)
	req.Equal("hola", res.TranslatedText)
}

func TestTranslate_Timeout_FallsBackToOriginal(t *testing.T) {
	req := require.New(t)
	backend := NewStubBackend()
	backend.Delay = 500 * time.Millisecond
	svc := NewService(backend, 50*time.Millisecond, slog.Default())

	start := time.Now()
	res := svc.Translate(context.Background(), "hello", "en", "es")
	elapsed := time.Since(start)

	req.False(res.Success)
	req.Equal("hello", res.TranslatedText)
	req.ErrorIs(res.Err, errors.ErrTranslationTimeout)
	// Bounded by the timeout plus scheduling slack, never the backend delay.
	req.Less(elapsed, 300*time.Millisecond)
}

func TestTranslate_BackendFailure_FallsBackToOriginal(t *testing.T) {
	req := require.New(t)
	backend := NewStubBackend()
	backend.Err = fmt.Errorf("model not loaded")
	svc := NewService(backend, time.Second, slog.Default())

	res := svc.Translate(context.Background(), "hello", "en", "es")

	req.False(res.Success)
	req.Equal("hello", res.TranslatedText)
	req.ErrorIs(res.Err, errors.ErrTranslationBackend)
}

func TestTranslate_EmptyText(t *testing.T) {
	req := require.New(t)
	svc := NewService(NewStubBackend(), time.Second, slog.Default())

	res := svc.Translate(context.Background(), "   ", "en", "es")

	req.False(res.Success)
	req.ErrorIs(res.Err, errors.ErrEmptyMessage)
}

func TestDetectTag(t *testing.T) {
	req := require.New(t)

	req.Equal("en", DetectTag("The quick brown fox jumps over the lazy dog", "fr"))
	req.Equal("es", DetectTag("El rápido zorro marrón salta sobre el perro perezoso", "fr"))
	// Gibberish falls back.
	req.Equal("fr", DetectTag("", "fr"))
}

func TestResolve(t *testing.T) {
	req := require.New(t)

	code, ok := Resolve("es")
	req.True(ok)
	req.Equal("spa_Latn", code)

	_, ok = Resolve("klingon")
	req.False(ok)
}
