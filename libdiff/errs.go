package libdiff

import "errors"

var (
	// ErrMissingKey is returned when the root of the new tree does not
	// carry a key known in the old tree.
	ErrMissingKey = errors.New("missing node key")
)
