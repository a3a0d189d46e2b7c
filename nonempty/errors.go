package nonempty

import "errors"

var (
	// ErrEmpty is returned when a construction was given an empty source or
	// a mutation would leave the container without elements.
	ErrEmpty = errors.New("nonempty: container would be empty")

	// ErrLengthMismatch is returned when a fixed-length conversion does not
	// match the container length. The container is left untouched.
	ErrLengthMismatch = errors.New("nonempty: length mismatch")
)
