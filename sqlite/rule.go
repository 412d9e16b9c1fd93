package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/flyingtimes/presstran"
)

// Compile-time interface verification.
var _ presstran.RuleService = (*RuleService)(nil)

// RuleService implements presstran.RuleService using SQLite. The rules
// table is the provenance record: every article row points at the rule
// version that located its body.
type RuleService struct {
	db *DB
}

// NewRuleService creates a new RuleService.
func NewRuleService(db *DB) *RuleService {
	return &RuleService{db: db}
}

// CreateRule records a rule version. Versions restart at one each extract
// run, so re-recording a version replaces the prior row.
func (s *RuleService) CreateRule(ctx context.Context, rule *presstran.ContentRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO rules (version, selector, source, created_at)
		VALUES (?, ?, ?, ?)
	`, rule.Version, rule.Selector, rule.Source, time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindRules returns all recorded rules ordered by version.
func (s *RuleService) FindRules(ctx context.Context) ([]*presstran.ContentRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT version, selector, source
		FROM rules
		ORDER BY version ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*presstran.ContentRule
	for rows.Next() {
		var rule presstran.ContentRule
		if err := rows.Scan(&rule.Version, &rule.Selector, &rule.Source); err != nil {
			return nil, err
		}
		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}

// LatestRule returns the highest recorded rule version.
func (s *RuleService) LatestRule(ctx context.Context) (*presstran.ContentRule, error) {
	var rule presstran.ContentRule

	err := s.db.QueryRowContext(ctx, `
		SELECT version, selector, source
		FROM rules
		ORDER BY version DESC
		LIMIT 1
	`).Scan(&rule.Version, &rule.Selector, &rule.Source)

	if err == sql.ErrNoRows {
		return nil, presstran.Errorf(presstran.ENOTFOUND, "no rule recorded")
	}
	if err != nil {
		return nil, err
	}

	return &rule, nil
}
