package translate

import (
	"fmt"
	"strings"
)

// FormatSummary formats a run outcome for display. Failed article IDs are
// listed on a second line when present; silent partial success is not an
// option.
func FormatSummary(o *Outcome) string {
	if o == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d translated", o.Done, len(o.Tasks))
	if o.Failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", o.Failed)
	}
	if pending := len(o.Tasks) - o.Done - o.Failed; pending > 0 {
		fmt.Fprintf(&b, ", %d not attempted", pending)
	}
	if len(o.FailedIDs) > 0 {
		b.WriteString("\nfailed: ")
		b.WriteString(strings.Join(o.FailedIDs, ", "))
	}
	return b.String()
}
