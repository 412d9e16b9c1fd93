// Package repair provides extraction repair orchestration. It applies the
// active content rule to the whole corpus, and when too many documents
// fail it asks the synthesizer for a revised rule and re-extracts, until
// the corpus is clean enough, revision stalls, or the iteration budget
// runs out.
package repair

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/flyingtimes/presstran"
	"golang.org/x/sync/errgroup"
)

// Defaults for loop configuration.
const (
	// DefaultConcurrency is the number of parallel extraction workers.
	DefaultConcurrency = 10

	// DefaultFailureTolerance is how many failing documents a corpus may
	// carry and still be accepted.
	DefaultFailureTolerance = 3

	// DefaultMaxIterations bounds how many evaluation passes a run may
	// spend before giving up.
	DefaultMaxIterations = 5
)

// State is a repair loop lifecycle position.
type State string

const (
	// StateEvaluating runs the current rule over the corpus.
	StateEvaluating State = "evaluating"

	// StateRevising asks the synthesizer for a better rule.
	StateRevising State = "revising"

	// StateAccepted ends a run whose failure count fits the tolerance.
	StateAccepted State = "accepted"

	// StateStalled ends a run that cannot improve further, either because
	// the synthesizer gave up or the iteration budget ran out.
	StateStalled State = "stalled"
)

// Loop coordinates extraction, repair, and artifact promotion.
type Loop struct {
	Extractor   presstran.Extractor
	Synthesizer presstran.RuleSynthesizer
	Store       presstran.ArticleStore
	Converter   presstran.Converter      // optional: markdown article bodies
	Rules       presstran.RuleService    // optional: rule provenance ledger
	Articles    presstran.ArticleService // optional: article ledger

	// Concurrency is the number of parallel extraction workers.
	// Values below one select DefaultConcurrency.
	Concurrency int

	// FailureTolerance is the number of failing documents a run may leave
	// behind and still be accepted. Zero means every document must extract.
	FailureTolerance int

	// MaxIterations bounds evaluation passes. Values below one select
	// DefaultMaxIterations.
	MaxIterations int

	// Markdown renders article bodies as markdown instead of plain text.
	Markdown bool
}

// Outcome is the result of one repair run. Rule, Report, and Results
// describe the best pass the run produced; Unresolved lists the documents
// that still failed under it.
type Outcome struct {
	State      State
	Rule       presstran.ContentRule
	Report     *presstran.ExtractionReport
	Results    []*presstran.ExtractionResult
	Iterations int
	Saved      int
	Bytes      int
	Unresolved []string
	Reason     string
}

// ProgressEvent reports progress during a repair run.
type ProgressEvent struct {
	Type        ProgressType
	Iteration   int
	RuleVersion int
	Selector    string
	Completed   int
	Total       int
	DocID       string
	Status      presstran.ExtractionStatus
	Reason      string
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressExtracted
	ProgressRevised
	ProgressFinished
)

// ProgressFunc is a callback for reporting repair progress.
type ProgressFunc func(event ProgressEvent)

// indexedResult pins one document's result to its corpus position.
type indexedResult struct {
	position int
	result   *presstran.ExtractionResult
}

// Run repairs extraction over the corpus starting from initial. A nil
// initial rule bootstraps one from the synthesizer before the first pass.
// Successful extractions from the best pass are promoted to article
// artifacts whatever the terminal state: a stalled run still publishes
// what it could extract, with the rest surfaced in Unresolved.
func (l *Loop) Run(ctx context.Context, corpus []*presstran.RawDocument, initial *presstran.ContentRule, progress ProgressFunc) (*Outcome, error) {
	maxIterations := l.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	current := initial
	if current == nil {
		rule, err := l.Synthesizer.Synthesize(ctx, corpus, nil, nil)
		if err != nil {
			return nil, err
		}
		if err := l.recordRule(ctx, &rule); err != nil {
			return nil, err
		}
		current = &rule
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:        ProgressStarted,
			RuleVersion: current.Version,
			Selector:    current.Selector,
			Total:       len(corpus),
		})
	}

	var (
		iteration   int
		results     []*presstran.ExtractionResult
		report      *presstran.ExtractionReport
		bestRule    presstran.ContentRule
		bestReport  *presstran.ExtractionReport
		bestResults []*presstran.ExtractionResult
		reason      string
	)

	state := StateEvaluating
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch state {
		case StateEvaluating:
			iteration++
			results = l.evaluate(corpus, *current, iteration, progress)
			report = presstran.BuildReport(current.Version, results)

			if bestReport == nil || report.Failed() < bestReport.Failed() {
				bestRule, bestReport, bestResults = *current, report, results
			}

			if report.Failed() <= l.FailureTolerance {
				state = StateAccepted
				continue
			}
			state = StateRevising

		case StateRevising:
			if iteration >= maxIterations {
				state = StateStalled
				reason = fmt.Sprintf("no acceptable rule after %d iterations", iteration)
				continue
			}

			revised, err := l.Synthesizer.Synthesize(ctx, corpus, report, current)
			if err != nil {
				if presstran.ErrorCode(err) == presstran.ESTALLED {
					state = StateStalled
					reason = presstran.ErrorMessage(err)
					continue
				}
				return nil, err
			}
			if revised.Equal(*current) {
				// A rule equal to the current one cannot change the report.
				state = StateStalled
				reason = "synthesizer returned the current rule"
				continue
			}

			if err := l.recordRule(ctx, &revised); err != nil {
				return nil, err
			}
			current = &revised

			if progress != nil {
				progress(ProgressEvent{
					Type:        ProgressRevised,
					Iteration:   iteration,
					RuleVersion: revised.Version,
					Selector:    revised.Selector,
					Total:       len(corpus),
				})
			}
			state = StateEvaluating

		default:
			return l.finish(ctx, state, reason, bestRule, bestReport, bestResults, iteration, progress)
		}
	}
}

// evaluate runs one full pass of the rule over the corpus. Documents are
// extracted in parallel; collecting the channel to the end is the barrier
// that makes the pass whole before any Accept/Revise decision. Extraction
// is pure, so cancellation is handled between passes by the caller.
func (l *Loop) evaluate(corpus []*presstran.RawDocument, rule presstran.ContentRule, iteration int, progress ProgressFunc) []*presstran.ExtractionResult {
	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan indexedResult, len(corpus))

	var completed atomic.Int64
	total := len(corpus)

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, doc := range corpus {
			i, doc := i, doc
			g.Go(func() error {
				resultCh <- indexedResult{position: i, result: l.Extractor.Extract(doc, rule)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*presstran.ExtractionResult, total)
	for item := range resultCh {
		completed.Add(1)
		results[item.position] = item.result

		if progress != nil {
			progress(ProgressEvent{
				Type:        ProgressExtracted,
				Iteration:   iteration,
				RuleVersion: rule.Version,
				Completed:   int(completed.Load()),
				Total:       total,
				DocID:       item.result.DocID,
				Status:      item.result.Status,
				Reason:      item.result.Reason,
			})
		}
	}

	return results
}

// finish promotes the best pass to artifacts and assembles the outcome.
func (l *Loop) finish(ctx context.Context, state State, reason string, rule presstran.ContentRule, report *presstran.ExtractionReport, results []*presstran.ExtractionResult, iteration int, progress ProgressFunc) (*Outcome, error) {
	saved, bytes, err := l.promote(ctx, results)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Iteration: iteration,
			Completed: report.Succeeded,
			Total:     report.Total,
		})
	}

	return &Outcome{
		State:      state,
		Rule:       rule,
		Report:     report,
		Results:    results,
		Iterations: iteration,
		Saved:      saved,
		Bytes:      bytes,
		Unresolved: report.Failing,
		Reason:     reason,
	}, nil
}

// promote publishes successful extractions as article artifacts in corpus
// order. All saves go to the store's staging area and publish in one
// Commit; any save failure aborts the staging area untouched.
func (l *Loop) promote(ctx context.Context, results []*presstran.ExtractionResult) (int, int, error) {
	if l.Store == nil {
		return 0, 0, nil
	}

	var saved, bytes int
	for position, res := range results {
		if res.Status != presstran.ExtractionSuccess {
			continue
		}

		body := res.Text
		if l.Markdown && l.Converter != nil && res.ContentHTML != "" {
			if md, err := l.Converter.Convert(res.ContentHTML); err == nil {
				body = md
			}
		}

		article := &presstran.Article{
			ID:          res.DocID,
			Title:       res.Title,
			Body:        body,
			RuleVersion: res.RuleVersion,
			ContentHash: ComputeHash(body),
			Position:    position,
		}

		if err := l.Store.Save(ctx, article); err != nil {
			_ = l.Store.Abort()
			return 0, 0, err
		}

		if l.Articles != nil {
			if err := l.Articles.CreateArticle(ctx, article); err != nil {
				_ = l.Store.Abort()
				return 0, 0, err
			}
		}

		saved++
		bytes += len(body)
	}

	if err := l.Store.Commit(); err != nil {
		return 0, 0, err
	}
	return saved, bytes, nil
}

func (l *Loop) recordRule(ctx context.Context, rule *presstran.ContentRule) error {
	if l.Rules == nil {
		return nil
	}
	return l.Rules.CreateRule(ctx, rule)
}
