package fs

import (
	"context"
	"strings"

	"github.com/flyingtimes/presstran"
)

// Ensure TranslationStore implements presstran.TranslationStore.
var _ presstran.TranslationStore = (*TranslationStore)(nil)

// TranslationStore persists translated artifacts as markdown files, one
// per source article, with the same staged-commit semantics as the
// article store.
type TranslationStore struct {
	staging
}

// NewTranslationStore creates a TranslationStore. Artifacts are staged at
// baseDir/name.tmp and published to baseDir/name.
func NewTranslationStore(baseDir, name string) *TranslationStore {
	return &TranslationStore{staging: staging{baseDir: baseDir, name: name}}
}

// Save stages one translated artifact. The file leads with the translated
// title as a heading when one is present.
func (s *TranslationStore) Save(ctx context.Context, article *presstran.TranslatedArticle) error {
	if article.ArticleID == "" {
		return presstran.Errorf(presstran.EINVALID, "translated article ID required")
	}
	if article.Body == "" {
		return presstran.Errorf(presstran.EINVALID, "translated article body required")
	}

	var b strings.Builder
	if article.Title != "" {
		b.WriteString("# ")
		b.WriteString(article.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(article.Body)
	b.WriteString("\n")

	return s.write(Filename(article.ArticleID, ".md"), b.String())
}
