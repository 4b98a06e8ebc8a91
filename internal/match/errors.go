package match

import "fmt"

// ConfigurationError marks invalid engine or ranker configuration. It is
// fatal at startup; misconfiguration is never silently corrected.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid matching configuration: %s", e.Message)
}
