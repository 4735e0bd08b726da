package feed

import (
	"errors"
	"fmt"
)

var (
	// ErrAllSourcesExhausted is terminal for a resource: live, cache and backup all failed.
	ErrAllSourcesExhausted = errors.New("all data sources exhausted")
	// ErrValidation marks a payload that parsed but has the wrong shape.
	ErrValidation = errors.New("payload failed validation")
)

// FetchError is a transient network or HTTP failure.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
