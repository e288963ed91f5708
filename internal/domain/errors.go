package domain

import (
	"errors"
	"fmt"
)

// Error kinds for a search invocation. Every failure surfaced by the engine
// wraps exactly one of these sentinels, so callers can classify with errors.Is.
var (
	// ErrInvalidInput signals a caller contract violation: a missing required
	// store, an empty compiled predicate, or an alternate filter invoked on an
	// empty collection.
	ErrInvalidInput = errors.New("invalid search input")
	// ErrStoreFailure signals an underlying case catalog failure.
	ErrStoreFailure = errors.New("case catalog failure")
	// ErrEnrichmentFailure signals an underlying occurrence store failure.
	ErrEnrichmentFailure = errors.New("occurrence store failure")
	// ErrMisconfiguredFilter signals a filter that requires a store which was
	// not supplied at construction.
	ErrMisconfiguredFilter = errors.New("misconfigured filter")
)

// SearchError is the uniform error type returned by the search engine. It
// carries a kind sentinel and the original cause; errors.Is matches both.
type SearchError struct {
	Kind  error
	Cause error
}

func (e *SearchError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Cause.Error())
}

func (e *SearchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewSearchError wraps cause with the given kind sentinel.
func NewSearchError(kind, cause error) error {
	return &SearchError{Kind: kind, Cause: cause}
}

// Invalidf creates an ErrInvalidInput SearchError from a format string.
func Invalidf(format string, args ...any) error {
	return &SearchError{Kind: ErrInvalidInput, Cause: fmt.Errorf(format, args...)}
}
