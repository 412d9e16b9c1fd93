package presstran

import (
	"context"
	"time"

	"golang.org/x/text/language"
)

// TaskState tracks a translation work item through its lifecycle.
// Transitions are Pending -> InProgress -> Done or Failed; terminal states
// are never revisited within a run.
type TaskState string

const (
	TaskPending    TaskState = "pending"
	TaskInProgress TaskState = "in_progress"
	TaskDone       TaskState = "done"
	TaskFailed     TaskState = "failed"
)

// Terminal reports whether the state is an end state.
func (s TaskState) Terminal() bool {
	return s == TaskDone || s == TaskFailed
}

// TranslationTask wraps one article queued for translation. The sequencer
// holds at most one task in progress at any time.
type TranslationTask struct {
	// ArticleID names the article this task translates.
	ArticleID string

	State TaskState

	// Reason explains a Failed state.
	Reason string

	StartedAt  time.Time
	FinishedAt time.Time
}

// TranslatedArticle is the final output of the pipeline, paired one to one
// with a successfully translated article.
type TranslatedArticle struct {
	// ArticleID matches the source article.
	ArticleID string `json:"articleId"`

	// Title is the translated title when the capability returns one,
	// otherwise the source title.
	Title string `json:"title"`

	// Body is the translated text.
	Body string `json:"body"`
}

// TranslationConfig fixes the translation parameters for a whole run.
// Every capability invocation within a run uses the same configuration so
// the translated corpus reads uniformly.
type TranslationConfig struct {
	// Target is a BCP 47 language tag, e.g. "zh-CN".
	Target string `yaml:"target"`

	// Tone carries style instructions applied to every article.
	Tone string `yaml:"tone"`

	// Formatting lists output conventions, one instruction per entry.
	Formatting []string `yaml:"formatting"`

	// Model names the capability model. Empty selects the default.
	Model string `yaml:"model"`

	// Temperature overrides the model default when non-nil.
	Temperature *float32 `yaml:"temperature"`
}

// Validate returns an error if the configuration is unusable.
func (c *TranslationConfig) Validate() error {
	if c.Target == "" {
		return Errorf(EINVALID, "translation target language required")
	}
	if _, err := language.Parse(c.Target); err != nil {
		return Errorf(EINVALID, "invalid target language %q: %v", c.Target, err)
	}
	return nil
}

// Translator is the external translation capability. Implementations are
// constructed from one TranslationConfig and apply it identically to every
// call. A call carries exactly one article body; a timeout surfaces as
// ETIMEOUT.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslationStore persists translated artifacts with atomic semantics.
type TranslationStore interface {
	Save(ctx context.Context, article *TranslatedArticle) error
	Commit() error
	Abort() error
}

// TaskService records translation task outcomes so a later run can see
// which articles still need attention. Failed tasks are never retried
// within a run; re-attempting them is a new run's decision.
type TaskService interface {
	// RecordTask appends a finished task to the ledger.
	RecordTask(ctx context.Context, runID string, task *TranslationTask) error

	// FindTasks returns recorded tasks matching the filter, newest first.
	FindTasks(ctx context.Context, filter TaskFilter) ([]*TranslationTask, error)
}

// TaskFilter narrows FindTasks.
type TaskFilter struct {
	RunID     *string    `json:"runId"`
	ArticleID *string    `json:"articleId"`
	State     *TaskState `json:"state"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
