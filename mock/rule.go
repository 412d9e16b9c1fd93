package mock

import (
	"context"

	"github.com/flyingtimes/presstran"
)

var _ presstran.RuleService = (*RuleService)(nil)

// RuleService is a mock implementation of presstran.RuleService.
type RuleService struct {
	CreateRuleFn func(ctx context.Context, rule *presstran.ContentRule) error
	FindRulesFn  func(ctx context.Context) ([]*presstran.ContentRule, error)
	LatestRuleFn func(ctx context.Context) (*presstran.ContentRule, error)
}

func (s *RuleService) CreateRule(ctx context.Context, rule *presstran.ContentRule) error {
	return s.CreateRuleFn(ctx, rule)
}

func (s *RuleService) FindRules(ctx context.Context) ([]*presstran.ContentRule, error) {
	return s.FindRulesFn(ctx)
}

func (s *RuleService) LatestRule(ctx context.Context) (*presstran.ContentRule, error) {
	return s.LatestRuleFn(ctx)
}
