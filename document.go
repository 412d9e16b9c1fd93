package presstran

import (
	"context"
	"time"
)

// RawDocument is one raw HTML artifact produced by the external fetch
// layer. Documents are immutable once fetched; the pipeline only reads
// them.
type RawDocument struct {
	// ID is the stable key the fetch layer derived from the source URL.
	// IDs are unique within a corpus and never change across runs.
	ID string `json:"id"`

	// HTML is the raw markup exactly as fetched.
	HTML string `json:"html"`

	// FetchedAt records when the artifact was produced, when known.
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *RawDocument) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	return nil
}

// CorpusStore loads the raw documents the fetch layer left behind.
type CorpusStore interface {
	// LoadCorpus returns every raw document in the corpus, ordered by ID.
	// Returns ENOTFOUND if the corpus location does not exist.
	LoadCorpus(ctx context.Context) ([]*RawDocument, error)
}
