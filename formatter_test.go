package presstran_test

import (
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/stretchr/testify/assert"
)

func TestFormatReport(t *testing.T) {
	t.Parallel()

	t.Run("formats fully successful report on one line", func(t *testing.T) {
		t.Parallel()

		report := &presstran.ExtractionReport{
			RuleVersion: 2,
			Total:       5,
			Succeeded:   5,
		}

		result := presstran.FormatReport(report)

		assert.Equal(t, "rule v2: 5/5 extracted (0 empty, 0 error)", result)
	})

	t.Run("lists failing document IDs", func(t *testing.T) {
		t.Parallel()

		report := &presstran.ExtractionReport{
			RuleVersion: 1,
			Total:       4,
			Succeeded:   2,
			Empty:       1,
			Errored:     1,
			Failing:     []string{"doc-02", "doc-04"},
		}

		result := presstran.FormatReport(report)

		expected := "rule v1: 2/4 extracted (1 empty, 1 error)\nfailing: doc-02, doc-04"
		assert.Equal(t, expected, result)
	})

	t.Run("returns empty string for nil report", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, presstran.FormatReport(nil))
	})
}

func TestFormatRules(t *testing.T) {
	t.Parallel()

	t.Run("formats one rule per line", func(t *testing.T) {
		t.Parallel()

		rules := []*presstran.ContentRule{
			{Version: 1, Selector: ".article-content-body", Source: presstran.RuleSourceSeed},
			{Version: 2, Selector: "div.post-body", Source: presstran.RuleSourceSynthesized},
		}

		result := presstran.FormatRules(rules)

		expected := "v1   seed         .article-content-body\nv2   synthesized  div.post-body"
		assert.Equal(t, expected, result)
	})

	t.Run("returns empty string for empty slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, presstran.FormatRules([]*presstran.ContentRule{}))
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, presstran.FormatRules(nil))
	})
}
