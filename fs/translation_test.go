package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("publishes one file per artifact on Commit", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		dir := t.TempDir()
		store := fs.NewTranslationStore(dir, "translated")

		require.NoError(t, store.Save(ctx, &presstran.TranslatedArticle{
			ArticleID: "doc-01",
			Title:     "标题",
			Body:      "正文第一段。",
		}))
		require.NoError(t, store.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "translated", "doc-01.md"))
		require.NoError(t, err)
		assert.Equal(t, "# 标题\n\n正文第一段。\n", string(data))
	})

	t.Run("omits the heading when there is no title", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		dir := t.TempDir()
		store := fs.NewTranslationStore(dir, "translated")

		require.NoError(t, store.Save(ctx, &presstran.TranslatedArticle{ArticleID: "doc-01", Body: "正文"}))
		require.NoError(t, store.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "translated", "doc-01.md"))
		require.NoError(t, err)
		assert.Equal(t, "正文\n", string(data))
	})

	t.Run("rejects artifacts without an ID or body", func(t *testing.T) {
		t.Parallel()

		store := fs.NewTranslationStore(t.TempDir(), "translated")

		err := store.Save(context.Background(), &presstran.TranslatedArticle{Body: "text"})
		assert.Equal(t, presstran.EINVALID, presstran.ErrorCode(err))

		err = store.Save(context.Background(), &presstran.TranslatedArticle{ArticleID: "doc-01"})
		assert.Equal(t, presstran.EINVALID, presstran.ErrorCode(err))
	})

	t.Run("commit with nothing staged is a no-op", func(t *testing.T) {
		t.Parallel()

		store := fs.NewTranslationStore(t.TempDir(), "translated")
		assert.NoError(t, store.Commit())
	})
}
