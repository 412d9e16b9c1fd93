package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flyingtimes/presstran"
)

// corpusExtensions are the file extensions the corpus loader accepts.
// Fetch layers commonly save raw markup as .html or, naively, as .txt.
var corpusExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".txt":  true,
}

// Ensure CorpusStore implements presstran.CorpusStore at compile time.
var _ presstran.CorpusStore = (*CorpusStore)(nil)

// CorpusStore reads raw HTML artifacts from a directory. Each file is one
// document; the filename stem is the document's stable ID.
type CorpusStore struct {
	dir string
}

// NewCorpusStore creates a CorpusStore reading from dir.
func NewCorpusStore(dir string) *CorpusStore {
	return &CorpusStore{dir: dir}
}

// LoadCorpus returns every raw document in the corpus directory, ordered
// by ID. Subdirectories and files with unknown extensions are skipped.
func (s *CorpusStore) LoadCorpus(ctx context.Context) ([]*presstran.RawDocument, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, presstran.Errorf(presstran.ENOTFOUND, "corpus directory %q does not exist", s.dir)
	}
	if err != nil {
		return nil, err
	}

	var docs []*presstran.RawDocument
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !corpusExtensions[ext] {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		doc := &presstran.RawDocument{
			ID:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			HTML: string(data),
		}
		if info, err := entry.Info(); err == nil {
			doc.FetchedAt = info.ModTime().UTC()
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}
