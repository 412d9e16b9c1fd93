package readability

import (
	"strings"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Prober implements presstran.ContentProber at compile time.
var _ presstran.ContentProber = (*Prober)(nil)

// Prober wraps go-readability to locate probable article containers. It is
// an alternative to the trafilatura prober with a different opinion about
// what counts as main content.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe returns a hint for the probable article container. A nil hint with
// a nil error means readability found nothing article-like.
func (p *Prober) Probe(rawHTML string) (*presstran.ContentHint, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, presstran.Errorf(presstran.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, nil
	}

	hint, ok := goquery.Locate(rawHTML, article.TextContent)
	if !ok {
		return nil, nil
	}
	return hint, nil
}
