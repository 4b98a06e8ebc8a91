package profile

import "fmt"

// ExtractionError indicates the candidate text is unusable for matching.
// It is fatal for the run: without a profile there is nothing to score.
type ExtractionError struct {
	Message string
	Tokens  int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("resume extraction failed: %s (%d tokens)", e.Message, e.Tokens)
}
