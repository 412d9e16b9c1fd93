package goquery_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/goquery"
	"github.com/flyingtimes/presstran/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storyPage(body string) string {
	return `<html><head><title>T</title></head><body><div class="story-container"><p>` + body + `</p></div></body></html>`
}

func storyCorpus(n int) []*presstran.RawDocument {
	corpus := make([]*presstran.RawDocument, 0, n)
	for i := 0; i < n; i++ {
		corpus = append(corpus, &presstran.RawDocument{
			ID:   fmt.Sprintf("doc-%02d", i+1),
			HTML: storyPage(longParagraph),
		})
	}
	return corpus
}

func TestSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()

	t.Run("bootstrap picks the container the corpus actually uses", func(t *testing.T) {
		t.Parallel()

		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)
		corpus := storyCorpus(3)

		rule, err := synth.Synthesize(context.Background(), corpus, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, rule.Version)
		assert.Equal(t, "div.story-container", rule.Selector)
		assert.Equal(t, presstran.RuleSourceSynthesized, rule.Source)
	})

	t.Run("bootstrap with no evidence falls back to the first seed", func(t *testing.T) {
		t.Parallel()

		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)

		rule, err := synth.Synthesize(context.Background(), nil, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, rule.Version)
		assert.Equal(t, ".article-content-body", rule.Selector)
		assert.Equal(t, presstran.RuleSourceSeed, rule.Source)
	})

	t.Run("revision improves on a failing rule", func(t *testing.T) {
		t.Parallel()

		extractor := goquery.NewExtractor()
		synth := goquery.NewSynthesizer(extractor, nil)
		corpus := storyCorpus(4)
		prev := &presstran.ContentRule{Version: 1, Selector: ".article-content-body", Source: presstran.RuleSourceSeed}

		results := make([]*presstran.ExtractionResult, 0, len(corpus))
		for _, doc := range corpus {
			results = append(results, extractor.Extract(doc, *prev))
		}
		report := presstran.BuildReport(prev.Version, results)
		require.Equal(t, 4, report.Failed())

		rule, err := synth.Synthesize(context.Background(), corpus, report, prev)

		require.NoError(t, err)
		assert.Equal(t, 2, rule.Version)
		assert.Equal(t, "div.story-container", rule.Selector)
		assert.False(t, rule.Equal(*prev))
	})

	t.Run("signals stalled when nothing improves on the current rule", func(t *testing.T) {
		t.Parallel()

		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)
		corpus := []*presstran.RawDocument{
			{ID: "doc-01", HTML: storyPage(longParagraph)},
			{ID: "doc-02", HTML: ""},
		}
		prev := &presstran.ContentRule{Version: 1, Selector: "div.story-container", Source: presstran.RuleSourceSynthesized}
		report := &presstran.ExtractionReport{
			RuleVersion: 1,
			Total:       2,
			Succeeded:   1,
			Errored:     1,
			Failing:     []string{"doc-02"},
		}

		_, err := synth.Synthesize(context.Background(), corpus, report, prev)

		require.Error(t, err)
		assert.Equal(t, presstran.ESTALLED, presstran.ErrorCode(err))
		assert.Contains(t, presstran.ErrorMessage(err), "no candidate improves on rule v1")
	})

	t.Run("never proposes the previous selector again", func(t *testing.T) {
		t.Parallel()

		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)
		corpus := storyCorpus(1)
		prev := &presstran.ContentRule{Version: 1, Selector: "div.story-container", Source: presstran.RuleSourceSynthesized}
		// A report that still lists the document as failing: the only
		// candidate that would help is prev itself, which is off the table.
		report := &presstran.ExtractionReport{
			RuleVersion: 1,
			Total:       1,
			Empty:       1,
			Failing:     []string{corpus[0].ID},
		}

		_, err := synth.Synthesize(context.Background(), corpus, report, prev)

		require.Error(t, err)
		assert.Equal(t, presstran.ESTALLED, presstran.ErrorCode(err))
	})

	t.Run("score ties prefer the conventional seed over a harvested pattern", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article><div class="wrapper"><p>` + longParagraph + `</p></div></article></body></html>`
		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)
		corpus := []*presstran.RawDocument{
			{ID: "doc-01", HTML: html},
			{ID: "doc-02", HTML: html},
		}

		rule, err := synth.Synthesize(context.Background(), corpus, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "article", rule.Selector)
		assert.Equal(t, presstran.RuleSourceSeed, rule.Source)
	})

	t.Run("uses prober hints when structure alone is ambiguous", func(t *testing.T) {
		t.Parallel()

		// Two siblings hold equal text, so no dominant container can be
		// harvested; only the prober knows which one is the article.
		html := `<html><body>
<div class="left-rail"><p>` + longParagraph + `</p></div>
<div class="main-story"><p>` + longParagraph + `</p></div>
</body></html>`
		prober := &mock.ContentProber{
			ProbeFn: func(string) (*presstran.ContentHint, error) {
				return &presstran.ContentHint{Tag: "div", Class: "main-story", Depth: 1}, nil
			},
		}
		synth := goquery.NewSynthesizer(goquery.NewExtractor(), prober)
		corpus := []*presstran.RawDocument{{ID: "doc-01", HTML: html}}

		rule, err := synth.Synthesize(context.Background(), corpus, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "div.main-story", rule.Selector)
		assert.Equal(t, presstran.RuleSourceSynthesized, rule.Source)
	})

	t.Run("identical inputs produce identical rules", func(t *testing.T) {
		t.Parallel()

		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)
		corpus := storyCorpus(3)

		first, err := synth.Synthesize(context.Background(), corpus, nil, nil)
		require.NoError(t, err)
		second, err := synth.Synthesize(context.Background(), corpus, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("returns promptly when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		synth := goquery.NewSynthesizer(goquery.NewExtractor(), nil)

		_, err := synth.Synthesize(ctx, storyCorpus(2), nil, nil)

		assert.Error(t, err)
	})
}
