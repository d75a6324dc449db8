package calendar

import "fmt"

// Sync error codes.
const (
	CodeAuthExpired         = "authExpired"         // refresh failed, supplier must re-authorize
	CodeProviderUnavailable = "providerUnavailable" // transient network/API failure
	CodeSubscriptionFailed  = "subscriptionFailed"  // non-fatal, degrades to manual sync
	CodeUnknownProvider     = "unknownProvider"
	CodeNotConnected        = "notConnected"
)

type SyncError struct {
	Code    string
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SyncError) Unwrap() error { return e.Err }

func NewAuthExpiredError(err error) error {
	return &SyncError{Code: CodeAuthExpired, Message: "calendar authorization expired, supplier must reconnect", Err: err}
}

func NewProviderUnavailableError(err error) error {
	return &SyncError{Code: CodeProviderUnavailable, Message: "calendar provider unavailable", Err: err}
}

func NewUnknownProviderError(provider string) error {
	return &SyncError{Code: CodeUnknownProvider, Message: fmt.Sprintf("unknown calendar provider %q", provider)}
}

func NewNotConnectedError(supplierID, provider string) error {
	return &SyncError{Code: CodeNotConnected, Message: fmt.Sprintf("supplier %s has no %s calendar connection", supplierID, provider)}
}

// ErrorCode extracts the sync error code, or empty for foreign errors.
func ErrorCode(err error) string {
	if se, ok := err.(*SyncError); ok {
		return se.Code
	}
	return ""
}
