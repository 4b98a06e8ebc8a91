package store

// StoreError reports a persistence failure. Archival is best-effort, so
// callers log these and continue the run.
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
