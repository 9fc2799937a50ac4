package analysis

import "fmt"

// ValidationError is fatal: the input as a whole is unusable (a required
// column is missing from the header, or no valid rows remain). No Report
// is produced.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// ConfigurationError is fatal and raised before any row is processed.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Option, e.Reason)
}
