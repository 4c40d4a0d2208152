package capability

import "fmt"

// InvalidDescriptorError is returned when a descriptor or the operations a
// capability exposes are malformed.
type InvalidDescriptorError struct {
	Name   string
	Reason string
}

// Error returns a formatted error message including the capability name.
func (e *InvalidDescriptorError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("capability: invalid descriptor: %s", e.Reason)
	}
	return fmt.Sprintf("capability: invalid descriptor %s: %s", e.Name, e.Reason)
}

// DuplicateNameError is returned when registering a capability whose name is
// already taken.
type DuplicateNameError struct {
	Name string
}

// Error returns a formatted error message including the duplicate name.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("capability: already registered: %s", e.Name)
}

// NotFoundError is returned when looking up an unregistered capability or an
// operation the capability does not expose.
type NotFoundError struct {
	Name      string
	Operation string
}

// Error returns a formatted error message including the missing name.
func (e *NotFoundError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("capability: %s has no operation %s", e.Name, e.Operation)
	}
	return fmt.Sprintf("capability: not found: %s", e.Name)
}

// MissingConfigError is returned when a configuration key a capability needs
// cannot be resolved at invocation time.
type MissingConfigError struct {
	Key        string
	Capability string
}

// Error returns a formatted error message including the missing key.
func (e *MissingConfigError) Error() string {
	if e.Capability == "" {
		return fmt.Sprintf("capability: missing configuration %s", e.Key)
	}
	return fmt.Sprintf("capability: %s requires configuration %s", e.Capability, e.Key)
}

// OperationError wraps any failure inside a capability operation.
// It is always recoverable at the conversation-turn level.
type OperationError struct {
	Capability string
	Operation  string
	Cause      error
}

// Error returns a formatted error message including the operation and cause.
func (e *OperationError) Error() string {
	return fmt.Sprintf("capability: %s.%s failed: %s", e.Capability, e.Operation, e.Reason())
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Reason returns the human readable cause, never empty.
func (e *OperationError) Reason() string {
	if e.Cause == nil || e.Cause.Error() == "" {
		return "unknown error"
	}
	return e.Cause.Error()
}
