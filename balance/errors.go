package balance

import "errors"

var (
	// ErrNotConverged is returned when the marginals are still outside the
	// threshold after MaxIterations passes.
	ErrNotConverged = errors.New("balance: factors did not converge")

	// ErrBadOptions is returned by Options.Validate.
	ErrBadOptions = errors.New("balance: invalid options")
)
