package presstran

import "context"

// Article is the accepted body of one document, the unit the translation
// sequencer consumes. Articles exist only for documents whose extraction
// succeeded under the final rule of a repair run.
type Article struct {
	// ID matches the raw document that produced the article.
	ID string `json:"id"`

	Title string `json:"title"`

	// Body is the artifact content: collapsed plain text by default,
	// markdown when the pipeline is configured to keep formatting.
	Body string `json:"body"`

	// RuleVersion names the content rule version that located the body.
	RuleVersion int `json:"ruleVersion"`

	// ContentHash fingerprints Body; identical runs over identical input
	// produce identical hashes.
	ContentHash string `json:"contentHash"`

	// Position preserves the document's place in corpus order.
	Position int `json:"position"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.ID == "" {
		return Errorf(EINVALID, "article ID required")
	}
	if a.Body == "" {
		return Errorf(EINVALID, "article body required")
	}
	if a.RuleVersion < 1 {
		return Errorf(EINVALID, "article rule version must be positive")
	}
	return nil
}

// ArticleStore persists article artifacts with atomic semantics.
// Save writes to a staging location; Commit publishes the run's output;
// Abort discards pending writes.
type ArticleStore interface {
	Save(ctx context.Context, article *Article) error
	Commit() error
	Abort() error
}

// ArticleSource loads persisted articles for translation.
type ArticleSource interface {
	// LoadArticles returns every stored article ordered by ID.
	// Returns ENOTFOUND if no articles have been published.
	LoadArticles(ctx context.Context) ([]*Article, error)
}

// ArticleService records article metadata in the run ledger.
type ArticleService interface {
	// CreateArticle records an article. Recording the same article ID again
	// replaces the prior row; re-runs supersede, they do not accumulate.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, in corpus order.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)
}

// ArticleFilter narrows FindArticles.
type ArticleFilter struct {
	ID          *string `json:"id"`
	RuleVersion *int    `json:"ruleVersion"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
