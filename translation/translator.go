//go:generate go run go.uber.org/mock/mockgen -source=translator.go -destination=../mocks/mock_translator.go -package=mocks
package translation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lingualink/errors"
)

// Result is the outcome of a translation attempt. TranslatedText is always
// usable: on any failure it falls back to the original text so callers never
// have to branch before delivering.
type Result struct {
	Success        bool
	TranslatedText string
	Err            error
}

type Translator interface {
	Translate(ctx context.Context, text, sourceTag, targetTag string) Result
}

// Backend performs the actual model call with already-resolved backend codes.
// Implementations may block; the Service bounds them with a timeout.
type Backend interface {
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)
}

type Service struct {
	backend Backend
	timeout time.Duration
	log     *slog.Logger
}

func NewService(backend Backend, timeout time.Duration, log *slog.Logger) *Service {
	return &Service{backend: backend, timeout: timeout, log: log}
}

// Translate converts text from sourceTag to targetTag.
// Same-language sends short-circuit without touching the backend; unknown
// tags fail fast. A backend call that outlives the timeout is abandoned and
// its recipient degrades to the original text.
func (s *Service) Translate(ctx context.Context, text, sourceTag, targetTag string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Success: false, TranslatedText: text, Err: errors.ErrEmptyMessage}
	}

	if sourceTag == targetTag {
		return Result{Success: true, TranslatedText: text}
	}

	sourceCode, okSource := Resolve(sourceTag)
	targetCode, okTarget := Resolve(targetTag)
	if !okSource || !okTarget {
		s.log.Warn("Unsupported language pair", "source", sourceTag, "target", targetTag)
		return Result{Success: false, TranslatedText: text, Err: errors.ErrUnsupportedLanguage}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		translated string
		err        error
	}
	done := make(chan outcome, 1)

	go func() {
		translated, err := s.backend.Translate(callCtx, text, sourceCode, targetCode)
		done <- outcome{translated: translated, err: err}
	}()

	select {
	case <-callCtx.Done():
		s.log.Warn("Translation timed out", "source", sourceTag, "target", targetTag)
		return Result{Success: false, TranslatedText: text, Err: errors.ErrTranslationTimeout}
	case out := <-done:
		if out.err != nil {
			s.log.Warn("Translation backend failed", "source", sourceTag, "target", targetTag, "err", out.err)
			return Result{
				Success:        false,
				TranslatedText: text,
				Err:            fmt.Errorf("%w: %v", errors.ErrTranslationBackend, out.err),
			}
		}
		return Result{Success: true, TranslatedText: out.translated}
	}
}
