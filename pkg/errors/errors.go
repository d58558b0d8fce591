// Package errors defines the failure classes of a sync run. Each typed error
// matches one sentinel under errors.Is, so callers branch on the class
// (configuration, tracker fetch, bad input, store lock) rather than on
// message text.
package errors

import (
	"errors"
)

// Standard library helpers, re-exported so one import covers both.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinels matched by the typed errors in this package.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConfig            = errors.New("configuration error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrRateLimited       = errors.New("rate limited")
	ErrFetchFailed       = errors.New("fetch failed")
	ErrLocked            = errors.New("store locked")
)

func matches(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// Predicates over the sentinels. Each looks through wrapping and joins.
var (
	IsNotFound          = matches(ErrNotFound)
	IsValidationError   = matches(ErrInvalidInput)
	IsConfigError       = matches(ErrConfig)
	IsFetchError        = matches(ErrFetchFailed)
	IsRateLimited       = matches(ErrRateLimited)
	IsUnauthorized      = matches(ErrUnauthorized)
	IsSourceUnavailable = matches(ErrSourceUnavailable)
	IsLocked            = matches(ErrLocked)
)
