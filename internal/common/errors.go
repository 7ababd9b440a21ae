package common

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated means the operation needs a caller identity and none was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller passed the tier check but lacks a required record.
	ErrForbidden = errors.New("forbidden")
	// ErrStoreUnavailable means no database handle could be obtained.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// AccessDeniedError is returned when the caller's role is below the required tier.
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// Business error codes carried in the response envelope.
const (
	CodeValidation       = 10001
	CodeUnauthenticated  = 40101
	CodeAccessDenied     = 40301
	CodeForbidden        = 40302
	CodeNotFound         = 40400
	CodeMethodNotAllowed = 40500
	CodeInternal         = 50001
	CodeStoreUnavailable = 50301
)

// Classify maps an error to its HTTP status, business code and client message.
func Classify(err error) (int, int, string) {
	var denied *AccessDeniedError
	switch {
	case errors.As(err, &denied):
		return http.StatusForbidden, CodeAccessDenied, denied.Message
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated, "unauthorized"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, CodeForbidden, "forbidden"
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable, CodeStoreUnavailable, "store unavailable"
	}
	return http.StatusInternalServerError, CodeInternal, "internal error"
}
