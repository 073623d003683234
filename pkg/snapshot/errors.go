package snapshot

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions the loader cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	// ErrSchema wraps schema validation failures.
	ErrSchema = errors.New("snapshot does not match schema")
	// ErrUnknownSprint is returned when a requested sprint id is not in the snapshot.
	ErrUnknownSprint = errors.New("unknown sprint")
	// ErrNoActiveSprint is returned when no sprint id was given and none is active.
	ErrNoActiveSprint = errors.New("no active sprint")
)
