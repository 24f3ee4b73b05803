package models

import "fmt"

// FetchErrorKind classifies acquisition failures at the fetcher boundary.
type FetchErrorKind string

const (
	FetchUnavailable FetchErrorKind = "unavailable"
	FetchAuthFailed  FetchErrorKind = "auth_failed"
	FetchEmpty       FetchErrorKind = "empty"
)

// Sentinels for errors.Is; they match any FetchError of the same kind.
var (
	ErrUnavailable = &FetchError{Kind: FetchUnavailable}
	ErrAuthFailed  = &FetchError{Kind: FetchAuthFailed}
	ErrEmpty       = &FetchError{Kind: FetchEmpty}
)

// FetchError is returned by series fetchers.
type FetchError struct {
	Kind   FetchErrorKind
	Series string
	Err    error
}

// NewFetchError builds a FetchError for series.
func NewFetchError(kind FetchErrorKind, series string, err error) *FetchError {
	return &FetchError{Kind: kind, Series: series, Err: err}
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.Series, e.Kind)
	if e.Series == "" {
		msg = "fetch: " + string(e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches on kind so callers can test errors.Is(err, models.ErrEmpty).
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Kind == e.Kind
}
