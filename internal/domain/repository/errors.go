package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable is returned by the degraded store when the backing
	// database never opened. Reads still succeed with empty results.
	ErrStoreUnavailable = errors.New("local store unavailable")
)
