package main

import (
	"errors"
	"fmt"

	"github.com/flyingtimes/presstran"
)

// Run executes the run command: extraction followed by translation. A
// stalled extraction still publishes its accepted articles, so the
// translation stage runs regardless; the stall is reported at the end.
func (c *RunCmd) Run(deps *Dependencies) error {
	extractErr := c.extract().Run(deps)
	if extractErr != nil && presstran.ErrorCode(extractErr) != presstran.ESTALLED {
		return extractErr
	}

	fmt.Fprintln(deps.Stdout)
	translateErr := c.translate().Run(deps)

	return errors.Join(extractErr, translateErr)
}
