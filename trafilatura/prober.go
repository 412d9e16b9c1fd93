package trafilatura

import (
	"strings"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Prober implements presstran.ContentProber at compile time.
var _ presstran.ContentProber = (*Prober)(nil)

// Prober wraps go-trafilatura to locate probable article containers.
// Trafilatura decides what the main content is; the original DOM is then
// searched for the tightest identifiable container holding that content.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe returns a hint for the probable article container. A nil hint with
// a nil error means trafilatura found nothing article-like.
func (p *Prober) Probe(rawHTML string) (*presstran.ContentHint, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, presstran.Errorf(presstran.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		// Trafilatura errors when it finds no content worth extracting.
		// For a prober that is a miss, not a failure.
		return nil, nil
	}

	hint, ok := goquery.Locate(rawHTML, result.ContentText)
	if !ok {
		return nil, nil
	}
	return hint, nil
}
