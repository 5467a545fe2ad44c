package githubinfra

import (
	"errors"
	"fmt"
	"time"
)

var ErrMissingDefaultBranch = errors.New("response has no default_branch")

// RequestError wraps a transport or decoding failure talking to the API
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("there was an error %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// RateLimitError is returned for 403 and 429 responses. ResetIn is nil
// when the response did not carry a usable X-RateLimit-Reset header.
type RateLimitError struct {
	ResetAt *time.Time
	ResetIn *time.Duration
}

func (e *RateLimitError) Error() string {
	msg := "GitHub API rate limit reached!"
	if e.ResetIn != nil {
		msg += " Resets in " + formatResetDuration(*e.ResetIn)
	}
	return msg
}

// UnexpectedStatusError is returned for any other non-2xx response
type UnexpectedStatusError struct {
	Code int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("GitHub API returned an unexpected status code: %d", e.Code)
}
