package supplier

import "fmt"

type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ServiceError{Code: "validationError", Message: msg}
}

func NewAuthError(msg string) error {
	return &ServiceError{Code: "authError", Message: msg}
}

// IsValidation reports whether the error is a validation failure the caller
// should map to a 400.
func IsValidation(err error) bool {
	se, ok := err.(*ServiceError)
	return ok && se.Code == "validationError"
}
