package semantic

import "fmt"

// EmbeddingError represents a failed embedding call. Per posting it degrades
// the semantic score instead of aborting the batch.
type EmbeddingError struct {
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
