package youtube

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"
)

// Common YouTube API errors.
var (
	// ErrUnauthorized indicates an invalid or expired access token.
	ErrUnauthorized = errors.New("youtube: unauthorised (invalid credentials)")

	// ErrForbidden indicates the token lacks the required scope.
	ErrForbidden = errors.New("youtube: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("youtube: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("youtube: rate limit exceeded")

	// ErrQuotaExceeded indicates the daily quota is used up.
	ErrQuotaExceeded = errors.New("youtube: quota exceeded")
)

// Error reasons reported in googleapi.ErrorItem.Reason.
const (
	reasonQuotaExceeded      = "quotaExceeded"
	reasonDailyLimitExceeded = "dailyLimitExceeded"
	reasonRateLimitExceeded  = "rateLimitExceeded"
	reasonUserRateLimit      = "userRateLimitExceeded"
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || statusOf(err) == http.StatusUnauthorized
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusTooManyRequests || hasReason(gerr, reasonRateLimitExceeded, reasonUserRateLimit)
}

// IsQuotaExceeded returns true if the daily quota is exhausted.
func IsQuotaExceeded(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && hasReason(gerr, reasonQuotaExceeded, reasonDailyLimitExceeded)
}

// WrapError tags a Google API error with one of the sentinels above while
// keeping the original error in the chain.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	var sentinel error
	switch {
	case IsQuotaExceeded(gerr):
		sentinel = ErrQuotaExceeded
	case IsRateLimited(gerr):
		sentinel = ErrRateLimited
	case gerr.Code == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case gerr.Code == http.StatusForbidden:
		sentinel = ErrForbidden
	case gerr.Code == http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// retryAfter returns the Retry-After header in seconds, or 0.
func retryAfter(err error) int {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	seconds, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || seconds < 0 {
		return 0
	}
	return seconds
}

func statusOf(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

func hasReason(gerr *googleapi.Error, reasons ...string) bool {
	for _, item := range gerr.Errors {
		for _, reason := range reasons {
			if item.Reason == reason {
				return true
			}
		}
	}
	return false
}
