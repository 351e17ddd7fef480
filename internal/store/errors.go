package store

import "errors"

var (
	// ErrNotFound is returned by updates that reference an id absent from
	// the collection. Deletes never return it: deleting a missing record
	// is a no-op.
	ErrNotFound = errors.New("record not found")
)
