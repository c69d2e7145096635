package browser

import (
	"errors"
	"fmt"
)

var (
	errMissingCredentials = errors.New("email and password are required")
	errLoginRejected      = errors.New("post-login URL is not an authenticated page")
)

// InteractionError represents any failed browser operation. The surface does
// not distinguish failure kinds; callers decide per operation whether a
// failure is fatal (navigation) or recoverable (a probe miss).
type InteractionError struct {
	Op     string
	Target string
	Cause  error
}

func (e *InteractionError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("browser %s %q: %v", e.Op, e.Target, e.Cause)
	}
	return fmt.Sprintf("browser %s: %v", e.Op, e.Cause)
}

func (e *InteractionError) Unwrap() error {
	return e.Cause
}
