package mock

import "github.com/flyingtimes/presstran"

var _ presstran.ContentProber = (*ContentProber)(nil)

// ContentProber is a mock implementation of presstran.ContentProber.
type ContentProber struct {
	ProbeFn func(html string) (*presstran.ContentHint, error)
}

func (p *ContentProber) Probe(html string) (*presstran.ContentHint, error) {
	return p.ProbeFn(html)
}
