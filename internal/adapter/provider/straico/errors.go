package straico

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure so callers can react without inspecting
// raw HTTP statuses.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request" // 400
	KindInvalidKey     ErrorKind = "invalid_key"     // 401
	KindForbidden      ErrorKind = "forbidden"       // 403
	KindNotFound       ErrorKind = "not_found"       // 404
	KindRateLimited    ErrorKind = "rate_limited"    // 429
	KindServerError    ErrorKind = "server_error"    // 5xx
	KindNetwork        ErrorKind = "network"         // transport failure
)

// APIError is the typed failure returned by every client method. Status is
// zero for network-level failures.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("straico: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("straico: %s (status %d): %s", e.Kind, e.Status, e.Message)
}

// kindFromStatus maps an HTTP status code to an ErrorKind.
func kindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidRequest
	case http.StatusUnauthorized:
		return KindInvalidKey
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindServerError
	}
}
