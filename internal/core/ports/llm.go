package ports

import (
	"context"
	"errors"
)

// ErrLLMNotConfigured means no API key is set. This is a valid runtime mode,
// not a misconfiguration: callers with a fallback use it, strict callers
// surface an upstream error.
var ErrLLMNotConfigured = errors.New("llm: not configured")

// ChatCompleter is the language-model boundary. Implementations instruct the
// model to return a single JSON object and hand back the raw content bytes.
type ChatCompleter interface {
	CompleteJSON(ctx context.Context, system, user string, temperature float64) ([]byte, error)
}
