package storage

import "errors"

// Sentinel errors returned by Storage implementations. Controllers map these
// to HTTP status codes; anything else is an unexpected storage fault and
// surfaces as a 500.
var (
	// ErrNotFound signals an absent row on lookup, update or delete. It is a
	// valid outcome, not an exceptional one.
	ErrNotFound = errors.New("storage: record not found")

	// ErrDuplicateSlug signals a write that would violate slug uniqueness.
	ErrDuplicateSlug = errors.New("storage: slug already exists")

	// ErrDuplicateUsername signals a write that would violate username
	// uniqueness.
	ErrDuplicateUsername = errors.New("storage: username already exists")

	// ErrInvalidReference signals a foreign-key violation, e.g. recording a
	// view for an article id that does not exist.
	ErrInvalidReference = errors.New("storage: referenced record does not exist")
)
