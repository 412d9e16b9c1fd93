package mock

import (
	"context"

	"github.com/flyingtimes/presstran"
)

// Compile-time interface verification.
var (
	_ presstran.TranslationStore = (*TranslationStore)(nil)
	_ presstran.TaskService      = (*TaskService)(nil)
)

// TranslationStore is a mock implementation of presstran.TranslationStore.
type TranslationStore struct {
	SaveFn   func(ctx context.Context, article *presstran.TranslatedArticle) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *TranslationStore) Save(ctx context.Context, article *presstran.TranslatedArticle) error {
	return s.SaveFn(ctx, article)
}

func (s *TranslationStore) Commit() error {
	return s.CommitFn()
}

func (s *TranslationStore) Abort() error {
	return s.AbortFn()
}

// TaskService is a mock implementation of presstran.TaskService.
type TaskService struct {
	RecordTaskFn func(ctx context.Context, runID string, task *presstran.TranslationTask) error
	FindTasksFn  func(ctx context.Context, filter presstran.TaskFilter) ([]*presstran.TranslationTask, error)
}

func (s *TaskService) RecordTask(ctx context.Context, runID string, task *presstran.TranslationTask) error {
	return s.RecordTaskFn(ctx, runID, task)
}

func (s *TaskService) FindTasks(ctx context.Context, filter presstran.TaskFilter) ([]*presstran.TranslationTask, error) {
	return s.FindTasksFn(ctx, filter)
}
