// Package translate provides translation run orchestration. It turns the
// accepted articles of a corpus into translated artifacts one at a time,
// in a fixed order, with every capability call configured identically so
// the translated corpus reads uniformly.
package translate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/flyingtimes/presstran"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single translation call. The capability is the
// only external call in the pipeline and must never block a run forever.
const DefaultTimeout = 5 * time.Minute

// Sequencer feeds articles to the translation capability under a strict
// single-flight discipline: at most one call is in flight at any instant,
// and the next task starts only after the current one reaches a terminal
// state. The discipline trades throughput for uniform quality and
// predictable load on a rate-sensitive external resource.
type Sequencer struct {
	Translator presstran.Translator
	Store      presstran.TranslationStore // optional: artifact output
	Tasks      presstran.TaskService      // optional: task ledger

	// Limiter paces capability calls. Nil disables pacing.
	Limiter *rate.Limiter

	// Timeout bounds each capability call. Zero selects DefaultTimeout.
	Timeout time.Duration
}

// Outcome is the result of one translation run. Tasks holds every task in
// processing order; Failed tasks are reported, never retried in-run.
type Outcome struct {
	RunID  string
	Tasks  []*presstran.TranslationTask
	Done   int
	Failed int

	// FailedIDs lists the articles whose tasks failed, in task order.
	FailedIDs []string

	// Bytes is the total size of translated bodies.
	Bytes int
}

// ProgressEvent reports progress during a translation run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ArticleID string
	State     presstran.TaskState
	Reason    string
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressTranslated
	ProgressFinished
)

// ProgressFunc is a callback for reporting translation progress.
type ProgressFunc func(event ProgressEvent)

// Run translates every article, one task at a time, in lexical article ID
// order. A failing task is recorded and the run moves on to the next one;
// a failing article never aborts its siblings. When the context is
// cancelled between tasks the remaining tasks stay Pending and the partial
// outcome is returned alongside the context error. Translated artifacts
// are staged per task and published in one Commit at the end of the run.
func (s *Sequencer) Run(ctx context.Context, runID string, articles []*presstran.Article, progress ProgressFunc) (*Outcome, error) {
	queue := make([]*presstran.Article, len(articles))
	copy(queue, articles)
	sort.Slice(queue, func(i, j int) bool { return queue[i].ID < queue[j].ID })

	tasks := make([]*presstran.TranslationTask, len(queue))
	for i, article := range queue {
		tasks[i] = &presstran.TranslationTask{
			ArticleID: article.ID,
			State:     presstran.TaskPending,
		}
	}

	outcome := &Outcome{RunID: runID, Tasks: tasks}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(queue)})
	}

	for i, article := range queue {
		// Cancellation is honored only between tasks; an in-flight task
		// always reaches Done or Failed before the run can stop.
		if err := ctx.Err(); err != nil {
			s.abort()
			return outcome, err
		}

		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				s.abort()
				return outcome, err
			}
		}

		task := tasks[i]
		body := s.runTask(ctx, runID, article, task)

		switch task.State {
		case presstran.TaskDone:
			outcome.Done++
			outcome.Bytes += len(body)
		default:
			outcome.Failed++
			outcome.FailedIDs = append(outcome.FailedIDs, task.ArticleID)
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressTranslated,
				Completed: i + 1,
				Total:     len(queue),
				ArticleID: task.ArticleID,
				State:     task.State,
				Reason:    task.Reason,
			})
		}
	}

	if s.Store != nil {
		if err := s.Store.Commit(); err != nil {
			return outcome, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: outcome.Done,
			Total:     len(queue),
		})
	}

	return outcome, nil
}

// runTask drives one task through Pending -> InProgress -> Done or Failed
// and returns the translated body on Done. The task is terminal when this
// returns; intermediate states are never visible outside the call.
func (s *Sequencer) runTask(ctx context.Context, runID string, article *presstran.Article, task *presstran.TranslationTask) string {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	task.State = presstran.TaskInProgress
	task.StartedAt = time.Now().UTC()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	translated, err := s.Translator.Translate(callCtx, article.Body)
	cancel()

	task.FinishedAt = time.Now().UTC()

	switch {
	case errors.Is(err, context.DeadlineExceeded) || presstran.ErrorCode(err) == presstran.ETIMEOUT:
		task.State = presstran.TaskFailed
		task.Reason = fmt.Sprintf("translation timed out after %s", timeout)
	case err != nil:
		task.State = presstran.TaskFailed
		task.Reason = presstran.ErrorMessage(err)
	case translated == "":
		task.State = presstran.TaskFailed
		task.Reason = "capability returned empty translation"
	default:
		task.State = presstran.TaskDone
	}

	if task.State == presstran.TaskDone && s.Store != nil {
		artifact := &presstran.TranslatedArticle{
			ArticleID: article.ID,
			Title:     article.Title,
			Body:      translated,
		}
		if err := s.Store.Save(ctx, artifact); err != nil {
			task.State = presstran.TaskFailed
			task.Reason = "failed to save artifact: " + presstran.ErrorMessage(err)
		}
	}

	if s.Tasks != nil {
		// Ledger write failures must not fail the task itself; the task
		// outcome is still reported through the run outcome.
		_ = s.Tasks.RecordTask(ctx, runID, task)
	}

	if task.State != presstran.TaskDone {
		return ""
	}
	return translated
}

func (s *Sequencer) abort() {
	if s.Store != nil {
		_ = s.Store.Abort()
	}
}
