package translation

import (
	"context"
	"time"
)

// StubBackend is a deterministic Backend for tests and local runs without a
// model endpoint. Unknown sentences are prefixed with the target code so
// assertions can still tell source and result apart.
type StubBackend struct {
	// Dictionary maps [targetCode][sourceText] to translated text.
	Dictionary map[string]map[string]string
	// Delay simulates model latency.
	Delay time.Duration
	// Err, when set, makes every call fail.
	Err error
}

func NewStubBackend() *StubBackend {
	return &StubBackend{
		Dictionary: map[string]map[string]string{
			"spa_Latn": {
				"hello":        "hola",
				"good morning": "buenos días",
			},
			"fra_Latn": {
				"hello":        "bonjour",
				"good morning": "bonjour",
			},
		},
	}
}

func (s *StubBackend) Translate(ctx context.Context, text, _, targetCode string) (string, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.Err != nil {
		return "", s.Err
	}
	if dict, ok := s.Dictionary[targetCode]; ok {
		if translated, ok := dict[text]; ok {
			return translated, nil
		}
	}
	return "[" + targetCode + "] " + text, nil
}
