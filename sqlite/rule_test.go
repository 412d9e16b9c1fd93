package sqlite_test

import (
	"context"
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleService(t *testing.T) {
	t.Parallel()

	t.Run("records and lists rule versions in order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewRuleService(MustOpenDB(t))

		require.NoError(t, svc.CreateRule(ctx, &presstran.ContentRule{Version: 2, Selector: ".article-body", Source: presstran.RuleSourceSynthesized}))
		require.NoError(t, svc.CreateRule(ctx, &presstran.ContentRule{Version: 1, Selector: "article", Source: presstran.RuleSourceSeed}))

		rules, err := svc.FindRules(ctx)
		require.NoError(t, err)

		require.Len(t, rules, 2)
		assert.Equal(t, "article", rules[0].Selector)
		assert.Equal(t, ".article-body", rules[1].Selector)
	})

	t.Run("re-recording a version supersedes the prior row", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewRuleService(MustOpenDB(t))

		require.NoError(t, svc.CreateRule(ctx, &presstran.ContentRule{Version: 1, Selector: "article", Source: presstran.RuleSourceSeed}))
		require.NoError(t, svc.CreateRule(ctx, &presstran.ContentRule{Version: 1, Selector: "main", Source: presstran.RuleSourceSeed}))

		rules, err := svc.FindRules(ctx)
		require.NoError(t, err)

		require.Len(t, rules, 1)
		assert.Equal(t, "main", rules[0].Selector)
	})

	t.Run("LatestRule returns the highest version", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewRuleService(MustOpenDB(t))

		require.NoError(t, svc.CreateRule(ctx, &presstran.ContentRule{Version: 1, Selector: "article", Source: presstran.RuleSourceSeed}))
		require.NoError(t, svc.CreateRule(ctx, &presstran.ContentRule{Version: 3, Selector: ".post-content", Source: presstran.RuleSourceSynthesized}))

		latest, err := svc.LatestRule(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, latest.Version)
		assert.Equal(t, ".post-content", latest.Selector)
	})

	t.Run("LatestRule on an empty ledger is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRuleService(MustOpenDB(t))

		_, err := svc.LatestRule(context.Background())
		assert.Equal(t, presstran.ENOTFOUND, presstran.ErrorCode(err))
	})

	t.Run("rejects invalid rules", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRuleService(MustOpenDB(t))

		err := svc.CreateRule(context.Background(), &presstran.ContentRule{Version: 1})
		assert.Equal(t, presstran.EINVALID, presstran.ErrorCode(err))
	})
}
