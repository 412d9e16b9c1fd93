package presstran

// ContentHint describes a probable article container located in markup by a
// rule-free generic reader. The synthesizer turns hints harvested from
// failing documents into rule candidates.
type ContentHint struct {
	// Tag is the container element name, e.g. "div" or "article".
	Tag string

	// ID is the container's id attribute, if any.
	ID string

	// Class is the most distinctive class on the container, if any.
	Class string

	// Depth is the container's distance from the document root. Shallower
	// containers make more stable rule candidates.
	Depth int
}

// Selector renders the hint as a CSS selector candidate, preferring the
// most stable form available.
func (h ContentHint) Selector() string {
	switch {
	case h.ID != "":
		return "#" + h.ID
	case h.Class != "":
		return h.Tag + "." + h.Class
	default:
		return h.Tag
	}
}

// ContentProber locates a probable article container in raw markup without
// a content rule, using generic readability heuristics. Probing is advisory:
// a nil hint with a nil error means the prober saw nothing article-like.
type ContentProber interface {
	Probe(html string) (*ContentHint, error)
}
