package presstran

import "sort"

// ExtractionStatus classifies the outcome of applying a content rule to a
// single document.
type ExtractionStatus string

const (
	// ExtractionSuccess means the rule matched and yielded a body above the
	// minimum plausible article length.
	ExtractionSuccess ExtractionStatus = "success"

	// ExtractionEmpty means the markup parsed but the rule selected
	// nothing, or the selected text was too short to be an article body.
	ExtractionEmpty ExtractionStatus = "empty"

	// ExtractionError means the markup could not be interpreted at all.
	ExtractionError ExtractionStatus = "error"
)

// ExtractionResult is the outcome of evaluating one content rule against
// one document. Results are recomputed wholesale whenever a revised rule is
// applied; stale results are never patched.
type ExtractionResult struct {
	// DocID identifies the evaluated document.
	DocID string

	// RuleVersion identifies the rule that produced this result.
	RuleVersion int

	Status ExtractionStatus

	// Text is the extracted plain body. Set only on Success.
	Text string

	// ContentHTML is the markup of the selected container, retained
	// for richer output renditions. Set only on Success.
	ContentHTML string

	// Title is the document title with the publication suffix stripped.
	Title string

	// Reason explains an Empty or Error outcome.
	Reason string
}

// Failed reports whether the result counts against the failure tolerance.
func (r *ExtractionResult) Failed() bool {
	return r.Status != ExtractionSuccess
}

// Extractor applies a content rule to a raw document. Extraction is pure:
// identical (document, rule) inputs always produce an identical result,
// because the repair loop depends on deterministic re-evaluation.
type Extractor interface {
	Extract(doc *RawDocument, rule ContentRule) *ExtractionResult
}

// ExtractionReport aggregates one full pass of a rule over a corpus.
type ExtractionReport struct {
	RuleVersion int
	Total       int
	Succeeded   int
	Empty       int
	Errored     int

	// Failing holds the IDs of Empty and Error documents, sorted.
	Failing []string
}

// Failed returns the number of documents that did not extract.
func (r *ExtractionReport) Failed() int {
	return r.Empty + r.Errored
}

// BuildReport aggregates per-document results into a corpus report.
func BuildReport(ruleVersion int, results []*ExtractionResult) *ExtractionReport {
	report := &ExtractionReport{
		RuleVersion: ruleVersion,
		Total:       len(results),
	}
	for _, res := range results {
		switch res.Status {
		case ExtractionSuccess:
			report.Succeeded++
		case ExtractionEmpty:
			report.Empty++
			report.Failing = append(report.Failing, res.DocID)
		default:
			report.Errored++
			report.Failing = append(report.Failing, res.DocID)
		}
	}
	sort.Strings(report.Failing)
	return report
}
