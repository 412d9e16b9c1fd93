// Package slog provides logging decorators for pipeline services using the
// standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/flyingtimes/presstran"
)

// Ensure LoggingSynthesizer implements presstran.RuleSynthesizer.
var _ presstran.RuleSynthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps a RuleSynthesizer with logging of every
// proposed rule, so operators can follow how the repair loop revises its
// strategy.
type LoggingSynthesizer struct {
	next   presstran.RuleSynthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next presstran.RuleSynthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

// Synthesize delegates to the wrapped synthesizer and logs the outcome.
func (s *LoggingSynthesizer) Synthesize(ctx context.Context, corpus []*presstran.RawDocument, report *presstran.ExtractionReport, prev *presstran.ContentRule) (presstran.ContentRule, error) {
	begin := time.Now()
	rule, err := s.next.Synthesize(ctx, corpus, report, prev)

	attrs := []any{
		"corpus_size", len(corpus),
		"duration", time.Since(begin),
	}
	if prev != nil {
		attrs = append(attrs, "prev_version", prev.Version, "prev_selector", prev.Selector)
	}
	if report != nil {
		attrs = append(attrs, "failing", report.Failed())
	}

	if err != nil {
		attrs = append(attrs, "error", presstran.ErrorMessage(err))
		s.logger.Warn("rule synthesis failed", attrs...)
		return rule, err
	}

	attrs = append(attrs, "version", rule.Version, "selector", rule.Selector, "source", rule.Source)
	s.logger.Info("rule synthesized", attrs...)
	return rule, nil
}
