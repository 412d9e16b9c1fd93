package main

import (
	"fmt"
	"path/filepath"

	"github.com/flyingtimes/presstran"
	"github.com/flyingtimes/presstran/fs"
	"github.com/flyingtimes/presstran/translate"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Run executes the translate command.
func (c *TranslateCmd) Run(deps *Dependencies) error {
	source := fs.NewArticleStore(filepath.Dir(c.Articles), filepath.Base(c.Articles))
	articles, err := source.LoadArticles(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}
	if len(articles) == 0 {
		err := presstran.Errorf(presstran.ENOTFOUND, "no articles in %q", c.Articles)
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}

	sequencer := &translate.Sequencer{
		Translator: deps.Translator,
		Store:      fs.NewTranslationStore(c.Out, "translated"),
		Tasks:      deps.Tasks,
		Timeout:    c.Timeout,
	}
	if c.RPS > 0 {
		sequencer.Limiter = rate.NewLimiter(rate.Limit(c.RPS), 1)
	}

	progress := func(event translate.ProgressEvent) {
		switch event.Type {
		case translate.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Translating %d articles, one at a time\n", event.Total)
		case translate.ProgressTranslated:
			if event.State == presstran.TaskDone {
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: done\n", event.Completed, event.Total, event.ArticleID)
			} else {
				fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: failed: %s\n", event.Completed, event.Total, event.ArticleID, event.Reason)
			}
		}
	}

	runID := uuid.New().String()
	outcome, err := sequencer.Run(deps.Ctx, runID, articles, progress)
	if outcome != nil {
		fmt.Fprintln(deps.Stdout, translate.FormatSummary(outcome))
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}

	return nil
}
