package models

import (
	"errors"
	"fmt"
)

// ErrMovieNotFound is returned when a cached movie id has no row. "No data
// yet" is a normal state for an unfetched detail view, not a failure.
var ErrMovieNotFound = errors.New("movie not found in cache")

// NetworkError normalizes every network-origin failure (transport error,
// non-success status, malformed payload) from the remote catalog client.
// It is always recoverable by retrying or falling back to cached data.
type NetworkError struct {
	Op    string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// IsNetworkError reports whether err is network-origin.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StoreError normalizes storage-engine failures. It is fatal for the
// current operation and is not retried automatically.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error { return e.Cause }

// IsStoreError reports whether err is a storage-engine failure.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
