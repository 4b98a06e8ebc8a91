package posting

import "fmt"

// MalformedPostingError marks a scraped record that cannot become a posting.
// It is recorded per posting and never aborts the batch.
type MalformedPostingError struct {
	Source  string
	URL     string
	Message string
}

func (e *MalformedPostingError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("malformed posting from %s (%s): %s", e.Source, e.URL, e.Message)
	}
	return fmt.Sprintf("malformed posting from %s: %s", e.Source, e.Message)
}
