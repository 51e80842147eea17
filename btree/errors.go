package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid context configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("btree: index out of bounds")
	// ErrIncompatibleContext signals nodes of different contexts within one tree.
	ErrIncompatibleContext = errors.New("btree: incompatible context")
	// ErrInvariantViolated is returned by Check for a malformed node structure.
	ErrInvariantViolated = errors.New("btree: invariant violated")
)
