package resume

import "fmt"

// UnsupportedFormatError indicates a résumé file extension with no extractor.
type UnsupportedFormatError struct {
	Path   string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format %q: %s", e.Format, e.Path)
}

// CorruptFileError indicates a résumé file that exists but cannot be parsed.
type CorruptFileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CorruptFileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Path, e.Message)
}

func (e *CorruptFileError) Unwrap() error {
	return e.Cause
}
