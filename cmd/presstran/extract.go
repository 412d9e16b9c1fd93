package main

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/fs"
	"github.com/flyingtimes/presstran/goquery"
	"github.com/flyingtimes/presstran/htmltomarkdown"
	"github.com/flyingtimes/presstran/readability"
	"github.com/flyingtimes/presstran/repair"
	"github.com/flyingtimes/presstran/slog"
	"github.com/flyingtimes/presstran/trafilatura"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	corpus, err := fs.NewCorpusStore(c.Corpus).LoadCorpus(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}
	if len(corpus) == 0 {
		err := presstran.Errorf(presstran.ENOTFOUND, "no raw documents in %q", c.Corpus)
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}

	extractor := goquery.NewExtractor()
	extractor.MinTextLength = c.MinLength
	extractor.TitleSuffix = c.TitleSuffix

	var prober presstran.ContentProber
	switch c.Prober {
	case "trafilatura":
		prober = trafilatura.NewProber()
	case "readability":
		prober = readability.NewProber()
	}

	synthesizer := slog.NewLoggingSynthesizer(goquery.NewSynthesizer(extractor, prober), deps.Logger)

	var initial *presstran.ContentRule
	if c.Rule != "" {
		if _, err := cascadia.Compile(c.Rule); err != nil {
			return presstran.Errorf(presstran.EINVALID, "invalid rule selector %q: %v", c.Rule, err)
		}
		initial = &presstran.ContentRule{Version: 1, Selector: c.Rule, Source: presstran.RuleSourceOperator}
		if err := deps.Rules.CreateRule(deps.Ctx, initial); err != nil {
			return err
		}
	}

	loop := &repair.Loop{
		Extractor:        extractor,
		Synthesizer:      synthesizer,
		Store:            fs.NewArticleStore(c.Out, "articles"),
		Rules:            deps.Rules,
		Articles:         deps.Articles,
		Concurrency:      c.Concurrency,
		FailureTolerance: c.Tolerance,
		MaxIterations:    c.MaxIterations,
	}
	if c.Markdown {
		loop.Converter = htmltomarkdown.NewConverter()
		loop.Markdown = true
	}

	progress := func(event repair.ProgressEvent) {
		switch event.Type {
		case repair.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Extracting %d documents with rule v%d (%s)\n",
				event.Total, event.RuleVersion, event.Selector)
		case repair.ProgressExtracted:
			if event.Status != presstran.ExtractionSuccess {
				fmt.Fprintf(deps.Stderr, "  %s %s: %s\n", event.Status, event.DocID, event.Reason)
			}
		case repair.ProgressRevised:
			fmt.Fprintf(deps.Stdout, "Revised rule v%d (%s), re-extracting\n",
				event.RuleVersion, event.Selector)
		}
	}

	outcome, err := loop.Run(deps.Ctx, corpus, initial, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, presstran.FormatReport(outcome.Report))
	fmt.Fprintf(deps.Stdout, "Saved %d articles (%s%s) after %d iteration(s)\n",
		outcome.Saved, repair.FormatBytes(outcome.Bytes), c.tokenSummary(deps, outcome), outcome.Iterations)

	if outcome.State == repair.StateStalled {
		// The accepted articles are published either way; the unresolved
		// documents are surfaced through the exit status.
		return presstran.Errorf(presstran.ESTALLED,
			"%d documents unresolved: %s", len(outcome.Unresolved), outcome.Reason)
	}
	return nil
}

// tokenSummary renders the token volume of the accepted articles, when a
// token counter is available.
func (c *ExtractCmd) tokenSummary(deps *Dependencies, outcome *repair.Outcome) string {
	if deps.TokenCounter == nil {
		return ""
	}

	var total int
	for _, res := range outcome.Results {
		if res.Status != presstran.ExtractionSuccess {
			continue
		}
		n, err := deps.TokenCounter.CountTokens(deps.Ctx, res.Text)
		if err != nil {
			return ""
		}
		total += n
	}
	return ", " + repair.FormatTokens(total)
}
