package service

import "errors"

var (
	// ErrSubmissionNotFound is returned when a referenced file id has no
	// stored submission.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrEmailTaken is returned by signup for an already registered email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so that login failures do not reveal which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrReportNotFound is returned when a verdict id has no stored report.
	ErrReportNotFound = errors.New("report not found")
)

// ValidationError marks client input problems; handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
