package mock

import "github.com/flyingtimes/presstran"

var _ presstran.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of presstran.Extractor.
type Extractor struct {
	ExtractFn func(doc *presstran.RawDocument, rule presstran.ContentRule) *presstran.ExtractionResult
}

func (e *Extractor) Extract(doc *presstran.RawDocument, rule presstran.ContentRule) *presstran.ExtractionResult {
	return e.ExtractFn(doc, rule)
}
