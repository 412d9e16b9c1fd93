package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flyingtimes/presstran"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var (
	_ presstran.ArticleStore  = (*ArticleStore)(nil)
	_ presstran.ArticleSource = (*ArticleStore)(nil)
)

// articleMeta is the YAML frontmatter of a stored article. It carries the
// rule provenance and content hash but deliberately no timestamps, so two
// runs over identical input produce byte-identical files.
type articleMeta struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	RuleVersion int    `yaml:"rule"`
	ContentHash string `yaml:"hash"`
	Position    int    `yaml:"position"`
}

// ArticleStore persists accepted articles as markdown files with YAML
// frontmatter. Saves go to a staging directory and publish atomically on
// Commit; the same store reads published articles back for translation.
type ArticleStore struct {
	staging
}

// NewArticleStore creates an ArticleStore. Articles are staged at
// baseDir/name.tmp and published to baseDir/name.
func NewArticleStore(baseDir, name string) *ArticleStore {
	return &ArticleStore{staging: staging{baseDir: baseDir, name: name}}
}

// Save stages one article artifact.
func (s *ArticleStore) Save(ctx context.Context, article *presstran.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}
	content, err := FormatArticle(article)
	if err != nil {
		return err
	}
	return s.write(Filename(article.ID, ".md"), content)
}

// LoadArticles returns every published article ordered by ID.
func (s *ArticleStore) LoadArticles(ctx context.Context) ([]*presstran.Article, error) {
	entries, err := os.ReadDir(s.finalDir())
	if os.IsNotExist(err) {
		return nil, presstran.Errorf(presstran.ENOTFOUND, "article directory %q does not exist", s.finalDir())
	}
	if err != nil {
		return nil, err
	}

	var articles []*presstran.Article
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.finalDir(), entry.Name()))
		if err != nil {
			return nil, err
		}

		article, err := ParseArticle(string(data))
		if err != nil {
			return nil, presstran.Errorf(presstran.EINTERNAL, "malformed article file %q: %v", entry.Name(), err)
		}
		articles = append(articles, article)
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })
	return articles, nil
}

// FormatArticle renders an article as a markdown file with frontmatter.
func FormatArticle(article *presstran.Article) (string, error) {
	meta, err := yaml.Marshal(articleMeta{
		ID:          article.ID,
		Title:       article.Title,
		RuleVersion: article.RuleVersion,
		ContentHash: article.ContentHash,
		Position:    article.Position,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(article.Body)
	b.WriteString("\n")
	return b.String(), nil
}

// ParseArticle parses a stored article file back into an Article.
func ParseArticle(content string) (*presstran.Article, error) {
	front, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var meta articleMeta
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return nil, err
	}

	return &presstran.Article{
		ID:          meta.ID,
		Title:       meta.Title,
		Body:        body,
		RuleVersion: meta.RuleVersion,
		ContentHash: meta.ContentHash,
		Position:    meta.Position,
	}, nil
}

// splitFrontmatter separates a file into its YAML frontmatter and body.
func splitFrontmatter(content string) (front, body string, err error) {
	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return "", "", presstran.Errorf(presstran.EINTERNAL, "missing frontmatter")
	}
	front, body, ok = strings.Cut(rest, "\n---\n")
	if !ok {
		return "", "", presstran.Errorf(presstran.EINTERNAL, "unterminated frontmatter")
	}
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimSuffix(body, "\n")
	return front + "\n", body, nil
}
