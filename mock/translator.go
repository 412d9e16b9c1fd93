package mock

import (
	"context"

	"github.com/flyingtimes/presstran"
)

// Compile-time interface verification.
var (
	_ presstran.Translator   = (*Translator)(nil)
	_ presstran.TokenCounter = (*TokenCounter)(nil)
)

// Translator is a mock implementation of presstran.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	return t.TranslateFn(ctx, text)
}

// TokenCounter is a mock implementation of presstran.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
