package domain

import "errors"

// Domain errors
var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrDocumentTypeUnknown = errors.New("document type unknown")
	ErrAccessDenied        = errors.New("access denied")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrQuotaConfigNotFound = errors.New("quota configuration not found")
	ErrUnknownQuotaBackend = errors.New("unknown quota backend")
)

// QuotaExceededError blocks a pending save. The message distinguishes
// which quota fired and is surfaced to the end user as-is.
type QuotaExceededError struct {
	Message string
}

func (e *QuotaExceededError) Error() string {
	return e.Message
}

// IsQuotaExceeded reports whether err is (or wraps) a quota violation.
func IsQuotaExceeded(err error) bool {
	var quotaErr *QuotaExceededError
	return errors.As(err, &quotaErr)
}
