package presstran

import "context"

// Rule sources recorded for provenance.
const (
	RuleSourceSeed        = "seed"
	RuleSourceSynthesized = "synthesized"
	RuleSourceOperator    = "operator"
)

// ContentRule is the structural query used to locate article bodies across
// a corpus. The selector is an opaque CSS expression: it can be inspected,
// logged, and persisted, but is never executed as code. At most one rule
// version is active for a corpus at any time, and only the repair loop
// installs new versions.
type ContentRule struct {
	// Version increments each time the rule is revised, starting at 1.
	Version int `json:"version"`

	// Selector is a CSS selector expected to match the article body
	// container in every document of the corpus.
	Selector string `json:"selector"`

	// Source records the rule's origin: "seed", "synthesized", or
	// "operator".
	Source string `json:"source"`
}

// Equal reports whether two rules select the same nodes. Version and
// provenance are ignored; a revision that reproduces the previous selector
// is no revision at all.
func (r ContentRule) Equal(other ContentRule) bool {
	return r.Selector == other.Selector
}

// Validate returns an error if the rule contains invalid fields. Selector
// syntax is verified by the extraction engine when the rule is compiled.
func (r ContentRule) Validate() error {
	if r.Selector == "" {
		return Errorf(EINVALID, "rule selector required")
	}
	if r.Version < 1 {
		return Errorf(EINVALID, "rule version must be positive")
	}
	return nil
}

// RuleSynthesizer derives a revised content rule from extraction outcomes.
type RuleSynthesizer interface {
	// Synthesize inspects the corpus and the latest extraction report and
	// returns a rule projected to raise the success count. When prev is nil
	// it must still return a concrete rule, seeded from conventional
	// article container patterns. It never returns a rule equal to prev;
	// when no candidate is expected to improve on prev it returns ESTALLED.
	Synthesize(ctx context.Context, corpus []*RawDocument, report *ExtractionReport, prev *ContentRule) (ContentRule, error)
}

// RuleService records rule versions so any artifact's provenance can be
// traced back to the exact selector that produced it.
type RuleService interface {
	// CreateRule records a rule version. Recording a version again
	// replaces the prior row; the ledger describes the latest run.
	CreateRule(ctx context.Context, rule *ContentRule) error

	// FindRules returns all recorded rules ordered by version.
	FindRules(ctx context.Context) ([]*ContentRule, error)

	// LatestRule returns the highest recorded rule version.
	// Returns ENOTFOUND if no rule has been recorded.
	LatestRule(ctx context.Context) (*ContentRule, error)
}
