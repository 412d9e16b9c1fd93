package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/flyingtimes/presstran"
)

// Compile-time interface verification.
var _ presstran.ArticleService = (*ArticleService)(nil)

// ArticleService implements presstran.ArticleService using SQLite. The
// ledger records article metadata and provenance; artifact bodies live in
// the file store.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle records an article. Recording the same ID again replaces
// the prior row; re-runs supersede, they do not accumulate.
func (s *ArticleService) CreateArticle(ctx context.Context, article *presstran.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO articles (id, title, rule_version, content_hash, position, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, article.ID, article.Title, article.RuleVersion, article.ContentHash,
		article.Position, time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindArticleByID retrieves an article's ledger row by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*presstran.Article, error) {
	var article presstran.Article

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, rule_version, content_hash, position
		FROM articles
		WHERE id = ?
	`, id).Scan(&article.ID, &article.Title, &article.RuleVersion, &article.ContentHash, &article.Position)

	if err == sql.ErrNoRows {
		return nil, presstran.Errorf(presstran.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// FindArticles retrieves articles matching the filter, in corpus order.
func (s *ArticleService) FindArticles(ctx context.Context, filter presstran.ArticleFilter) ([]*presstran.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, rule_version, content_hash, position FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RuleVersion != nil {
		query.WriteString(" AND rule_version = ?")
		args = append(args, *filter.RuleVersion)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*presstran.Article
	for rows.Next() {
		var article presstran.Article
		if err := rows.Scan(&article.ID, &article.Title, &article.RuleVersion,
			&article.ContentHash, &article.Position); err != nil {
			return nil, err
		}
		articles = append(articles, &article)
	}

	return articles, rows.Err()
}
