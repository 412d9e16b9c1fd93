package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/flyingtimes/presstran"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ presstran.TaskService = (*TaskService)(nil)

// TaskService implements presstran.TaskService using SQLite. Unlike rules
// and articles, tasks accumulate across runs: the ledger is how a future
// run discovers which articles failed translation and still need a
// re-attempt.
type TaskService struct {
	db *DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *DB) *TaskService {
	return &TaskService{db: db}
}

// RecordTask appends a finished task to the ledger.
func (s *TaskService) RecordTask(ctx context.Context, runID string, task *presstran.TranslationTask) error {
	if runID == "" {
		return presstran.Errorf(presstran.EINVALID, "run ID required")
	}
	if task.ArticleID == "" {
		return presstran.Errorf(presstran.EINVALID, "task article ID required")
	}
	if !task.State.Terminal() {
		return presstran.Errorf(presstran.EINVALID, "task state %q is not terminal", task.State)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, run_id, article_id, state, reason, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), runID, task.ArticleID, string(task.State), task.Reason,
		task.StartedAt.UTC().Format(time.RFC3339Nano),
		task.FinishedAt.UTC().Format(time.RFC3339Nano))

	return err
}

// FindTasks returns recorded tasks matching the filter, newest first.
func (s *TaskService) FindTasks(ctx context.Context, filter presstran.TaskFilter) ([]*presstran.TranslationTask, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT article_id, state, reason, started_at, finished_at FROM tasks WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.ArticleID != nil {
		query.WriteString(" AND article_id = ?")
		args = append(args, *filter.ArticleID)
	}
	if filter.State != nil {
		query.WriteString(" AND state = ?")
		args = append(args, string(*filter.State))
	}

	query.WriteString(" ORDER BY finished_at DESC, article_id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*presstran.TranslationTask
	for rows.Next() {
		var task presstran.TranslationTask
		var state, startedAt, finishedAt string

		if err := rows.Scan(&task.ArticleID, &state, &task.Reason, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		task.State = presstran.TaskState(state)

		if task.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if task.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		tasks = append(tasks, &task)
	}

	return tasks, rows.Err()
}
