package mock

import (
	"context"

	"github.com/flyingtimes/presstran"
)

var _ presstran.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of presstran.CorpusStore.
type CorpusStore struct {
	LoadCorpusFn func(ctx context.Context) ([]*presstran.RawDocument, error)
}

func (s *CorpusStore) LoadCorpus(ctx context.Context) ([]*presstran.RawDocument, error) {
	return s.LoadCorpusFn(ctx)
}
