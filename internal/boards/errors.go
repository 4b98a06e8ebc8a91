package boards

import "fmt"

// FetchError represents a failed fetch against one job board. A source that
// fails contributes zero postings; it never aborts the batch.
type FetchError struct {
	Source  string
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch from %s failed (%s): %s: %v", e.Source, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch from %s failed (%s): %s", e.Source, e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
