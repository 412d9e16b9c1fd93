package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/mock"
	presslog "github.com/flyingtimes/presstran/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTranslator_Translate(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes but never article text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		next := &mock.Translator{
			TranslateFn: func(ctx context.Context, text string) (string, error) {
				return "translated body", nil
			},
		}

		tr := presslog.NewLoggingTranslator(next, logger)
		got, err := tr.Translate(context.Background(), "secret source text")
		require.NoError(t, err)

		assert.Equal(t, "translated body", got)
		assert.Contains(t, buf.String(), "translation call finished")
		assert.Contains(t, buf.String(), "input_bytes=18")
		assert.NotContains(t, buf.String(), "secret source text")
		assert.NotContains(t, buf.String(), "translated body")
	})

	t.Run("logs failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Translator{
			TranslateFn: func(ctx context.Context, text string) (string, error) {
				return "", presstran.Errorf(presstran.ETIMEOUT, "deadline exceeded")
			},
		}

		tr := presslog.NewLoggingTranslator(next, logger)
		_, err := tr.Translate(context.Background(), "text")

		assert.Equal(t, presstran.ETIMEOUT, presstran.ErrorCode(err))
		assert.Contains(t, buf.String(), "translation call failed")
		assert.Contains(t, buf.String(), "level=WARN")
	})
}
