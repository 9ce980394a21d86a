package xpatch

import "errors"

var (
	// ErrNodeNotFound is returned by Apply when a spec expression selects
	// no element.
	ErrNodeNotFound = errors.New("node not found")
	ErrBadSpec      = errors.New("bad spec")
)
