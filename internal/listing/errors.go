package listing

import "fmt"

// ExtractionError represents a failure to parse or traverse a page's markup.
// Individual field misses and rejected records are not errors; this covers
// the page-level case where no elements could be read at all.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
