package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/flyingtimes/presstran"
)

// Ensure LoggingTranslator implements presstran.Translator.
var _ presstran.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with per-call logging. Bodies are
// logged as sizes only; article text never enters the log stream.
type LoggingTranslator struct {
	next   presstran.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next presstran.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs the call.
func (t *LoggingTranslator) Translate(ctx context.Context, text string) (string, error) {
	begin := time.Now()
	translated, err := t.next.Translate(ctx, text)

	attrs := []any{
		"input_bytes", len(text),
		"duration", time.Since(begin),
	}

	if err != nil {
		attrs = append(attrs, "error", presstran.ErrorMessage(err))
		t.logger.Warn("translation call failed", attrs...)
		return translated, err
	}

	attrs = append(attrs, "output_bytes", len(translated))
	t.logger.Debug("translation call finished", attrs...)
	return translated, nil
}
