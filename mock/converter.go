package mock

import "github.com/flyingtimes/presstran"

var _ presstran.Converter = (*Converter)(nil)

// Converter is a mock implementation of presstran.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
