package persona

import "fmt"

// ValidationError is returned when a persona definition is malformed.
type ValidationError struct {
	Persona string
	Field   string
	Reason  string
	Cause   error
}

// Error returns a formatted error message including the persona and field.
func (e *ValidationError) Error() string {
	name := e.Persona
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("persona %s: invalid %s: %s", name, e.Field, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}
