package analysis

import "errors"

// ValidationError reports rejected input. No side effects have occurred by
// the time one is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrBlankText   = &ValidationError{Reason: "text cannot be empty or contain only whitespace"}
	ErrTextTooLong = &ValidationError{Reason: "text is too long"}
)

// Validation builds a ValidationError with the given reason.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
