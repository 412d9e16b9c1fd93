package presstran

import (
	"fmt"
	"strings"
)

// FormatReport formats an extraction report for display.
// Failing document IDs are listed on a second line when present.
func FormatReport(r *ExtractionReport) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "rule v%d: %d/%d extracted (%d empty, %d error)",
		r.RuleVersion, r.Succeeded, r.Total, r.Empty, r.Errored)
	if len(r.Failing) > 0 {
		b.WriteString("\nfailing: ")
		b.WriteString(strings.Join(r.Failing, ", "))
	}
	return b.String()
}

// FormatRules formats recorded rule versions for display, one per line.
func FormatRules(rules []*ContentRule) string {
	if len(rules) == 0 {
		return ""
	}

	parts := make([]string, 0, len(rules))
	for _, rule := range rules {
		parts = append(parts, fmt.Sprintf("v%-3d %-12s %s", rule.Version, rule.Source, rule.Selector))
	}

	return strings.Join(parts, "\n")
}
