package githubinfra

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const rateLimitResetHeader = "X-RateLimit-Reset"

var resetMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "0 seconds", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second", DivBy: 1},
	{D: time.Minute, Format: "%d seconds", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute", DivBy: 1},
	{D: time.Hour, Format: "%d minutes", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour", DivBy: 1},
	{D: humanize.Day, Format: "%d hours", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day", DivBy: 1},
	{D: humanize.Week, Format: "%d days", DivBy: humanize.Day},
	{D: math.MaxInt64, Format: "a long while", DivBy: 1},
}

// checkResponse maps a response status onto the client's error types
func checkResponse(resp *http.Response, now time.Time) error {
	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return newRateLimitError(resp.Header.Get(rateLimitResetHeader), now)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &UnexpectedStatusError{Code: resp.StatusCode}
	}
	return nil
}

func newRateLimitError(header string, now time.Time) *RateLimitError {
	epoch, err := strconv.ParseInt(strings.TrimSpace(header), 10, 64)
	if err != nil {
		return &RateLimitError{}
	}

	resetAt := time.Unix(epoch, 0)
	remaining := resetAt.Sub(now.Truncate(time.Second))
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitError{ResetAt: &resetAt, ResetIn: &remaining}
}

// formatResetDuration renders d in a single coarse unit, e.g. "5 minutes"
func formatResetDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	base := time.Unix(0, 0)
	return humanize.CustomRelTime(base, base.Add(d), "", "", resetMagnitudes)
}
