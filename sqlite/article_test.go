package sqlite_test

import (
	"context"
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleService(t *testing.T) {
	t.Parallel()

	t.Run("records and retrieves article provenance", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := MustOpenDB(t)
		require.NoError(t, sqlite.NewRuleService(db).CreateRule(ctx, &presstran.ContentRule{Version: 2, Selector: ".article-body", Source: presstran.RuleSourceSynthesized}))

		svc := sqlite.NewArticleService(db)
		require.NoError(t, svc.CreateArticle(ctx, &presstran.Article{
			ID:          "doc-01",
			Title:       "A Title",
			Body:        "body text",
			RuleVersion: 2,
			ContentHash: "abc",
			Position:    3,
		}))

		got, err := svc.FindArticleByID(ctx, "doc-01")
		require.NoError(t, err)

		assert.Equal(t, "doc-01", got.ID)
		assert.Equal(t, "A Title", got.Title)
		assert.Equal(t, 2, got.RuleVersion)
		assert.Equal(t, "abc", got.ContentHash)
		assert.Equal(t, 3, got.Position)
		assert.Empty(t, got.Body, "ledger rows carry metadata, not bodies")
	})

	t.Run("re-recording an ID supersedes the prior row", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := MustOpenDB(t)
		rules := sqlite.NewRuleService(db)
		require.NoError(t, rules.CreateRule(ctx, &presstran.ContentRule{Version: 1, Selector: "article", Source: presstran.RuleSourceSeed}))
		require.NoError(t, rules.CreateRule(ctx, &presstran.ContentRule{Version: 2, Selector: "main", Source: presstran.RuleSourceSynthesized}))

		svc := sqlite.NewArticleService(db)
		require.NoError(t, svc.CreateArticle(ctx, &presstran.Article{ID: "doc-01", Body: "x", RuleVersion: 1, ContentHash: "old"}))
		require.NoError(t, svc.CreateArticle(ctx, &presstran.Article{ID: "doc-01", Body: "x", RuleVersion: 2, ContentHash: "new"}))

		articles, err := svc.FindArticles(ctx, presstran.ArticleFilter{})
		require.NoError(t, err)

		require.Len(t, articles, 1)
		assert.Equal(t, 2, articles[0].RuleVersion)
		assert.Equal(t, "new", articles[0].ContentHash)
	})

	t.Run("filters by rule version in corpus order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := MustOpenDB(t)
		rules := sqlite.NewRuleService(db)
		require.NoError(t, rules.CreateRule(ctx, &presstran.ContentRule{Version: 1, Selector: "article", Source: presstran.RuleSourceSeed}))
		require.NoError(t, rules.CreateRule(ctx, &presstran.ContentRule{Version: 2, Selector: "main", Source: presstran.RuleSourceSynthesized}))

		svc := sqlite.NewArticleService(db)
		require.NoError(t, svc.CreateArticle(ctx, &presstran.Article{ID: "b", Body: "x", RuleVersion: 2, Position: 1}))
		require.NoError(t, svc.CreateArticle(ctx, &presstran.Article{ID: "a", Body: "x", RuleVersion: 2, Position: 0}))
		require.NoError(t, svc.CreateArticle(ctx, &presstran.Article{ID: "c", Body: "x", RuleVersion: 1, Position: 2}))

		version := 2
		articles, err := svc.FindArticles(ctx, presstran.ArticleFilter{RuleVersion: &version})
		require.NoError(t, err)

		require.Len(t, articles, 2)
		assert.Equal(t, "a", articles[0].ID)
		assert.Equal(t, "b", articles[1].ID)
	})

	t.Run("missing article is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(MustOpenDB(t))

		_, err := svc.FindArticleByID(context.Background(), "ghost")
		assert.Equal(t, presstran.ENOTFOUND, presstran.ErrorCode(err))
	})
}
