package error

import "fmt"

// Form field names reported by ValidationError.
const (
	FieldTitle   = "title"
	FieldAmount  = "amount"
	FieldAccount = "account"
)

// ValidationError reports a form field that failed validation. Callers can
// match on Field to highlight the offending input; no persistence is
// attempted when one is returned.
type ValidationError struct {
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Field)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field}
}
