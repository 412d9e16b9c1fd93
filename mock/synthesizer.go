package mock

import (
	"context"

	"github.com/flyingtimes/presstran"
)

var _ presstran.RuleSynthesizer = (*RuleSynthesizer)(nil)

// RuleSynthesizer is a mock implementation of presstran.RuleSynthesizer.
type RuleSynthesizer struct {
	SynthesizeFn func(ctx context.Context, corpus []*presstran.RawDocument, report *presstran.ExtractionReport, prev *presstran.ContentRule) (presstran.ContentRule, error)
}

func (s *RuleSynthesizer) Synthesize(ctx context.Context, corpus []*presstran.RawDocument, report *presstran.ExtractionReport, prev *presstran.ContentRule) (presstran.ContentRule, error) {
	return s.SynthesizeFn(ctx, corpus, report, prev)
}
