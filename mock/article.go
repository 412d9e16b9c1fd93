package mock

import (
	"context"

	"github.com/flyingtimes/presstran"
)

// Compile-time interface verification.
var (
	_ presstran.ArticleStore   = (*ArticleStore)(nil)
	_ presstran.ArticleSource  = (*ArticleSource)(nil)
	_ presstran.ArticleService = (*ArticleService)(nil)
)

// ArticleStore is a mock implementation of presstran.ArticleStore.
type ArticleStore struct {
	SaveFn   func(ctx context.Context, article *presstran.Article) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ArticleStore) Save(ctx context.Context, article *presstran.Article) error {
	return s.SaveFn(ctx, article)
}

func (s *ArticleStore) Commit() error {
	return s.CommitFn()
}

func (s *ArticleStore) Abort() error {
	return s.AbortFn()
}

// ArticleSource is a mock implementation of presstran.ArticleSource.
type ArticleSource struct {
	LoadArticlesFn func(ctx context.Context) ([]*presstran.Article, error)
}

func (s *ArticleSource) LoadArticles(ctx context.Context) ([]*presstran.Article, error) {
	return s.LoadArticlesFn(ctx)
}

// ArticleService is a mock implementation of presstran.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *presstran.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*presstran.Article, error)
	FindArticlesFn    func(ctx context.Context, filter presstran.ArticleFilter) ([]*presstran.Article, error)
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *presstran.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*presstran.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter presstran.ArticleFilter) ([]*presstran.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}
