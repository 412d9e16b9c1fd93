package presstran

import "context"

// TokenCounter counts tokens in text for a specific model. The translate
// command uses it to report how much model budget a corpus will consume.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
