package google

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")

	// ErrQuotaExceeded indicates the API quota was exceeded.
	ErrQuotaExceeded = errors.New("google: quota exceeded")
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || hasStatus(err, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || hasStatus(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || hasStatus(err, http.StatusTooManyRequests)
}

// IsQuotaExceeded returns true if the error indicates an exhausted quota.
// Google reports this as 403 with reason "quotaExceeded".
func IsQuotaExceeded(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	return hasStatus(err, http.StatusForbidden) && hasReason(err, "quotaExceeded")
}

// WrapError converts a Google API error to a more specific error type.
// The original error stays in the chain so callers can still inspect it.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusUnauthorized:
		return errors.Join(ErrUnauthorized, err)
	case gerr.Code == http.StatusForbidden && hasReason(err, "quotaExceeded"):
		return errors.Join(ErrQuotaExceeded, err)
	case gerr.Code == http.StatusForbidden:
		return errors.Join(ErrForbidden, err)
	case gerr.Code == http.StatusNotFound:
		return errors.Join(ErrNotFound, err)
	case gerr.Code == http.StatusTooManyRequests:
		return errors.Join(ErrRateLimited, err)
	default:
		return err
	}
}

func hasStatus(err error, code int) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == code
}

func hasReason(err error, reason string) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	for _, item := range gerr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}
