package main

import (
	"fmt"

	"github.com/flyingtimes/presstran"
)

// Run executes the rules command.
func (c *RulesCmd) Run(deps *Dependencies) error {
	rules, err := deps.Rules.FindRules(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", presstran.ErrorMessage(err))
		return err
	}

	if len(rules) == 0 {
		fmt.Fprintln(deps.Stdout, "No rules recorded. Run 'presstran extract' first.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, presstran.FormatRules(rules))
	return nil
}
