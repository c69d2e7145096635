package similarity

import "fmt"

// BackendUnavailableError indicates the enhanced embedding backend could not
// be constructed or stopped responding. Callers recover by scoring with the
// token-set fallback instead.
type BackendUnavailableError struct {
	Message string
	Cause   error
}

func (e *BackendUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("similarity backend unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("similarity backend unavailable: %s", e.Message)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Cause
}
