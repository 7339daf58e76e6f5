package space

import "errors"

// Errors returned by Space operations
var (
	ErrSpaceDestroyed   = errors.New("space destroyed")
	ErrEntityInSpace    = errors.New("entity already in a space")
	ErrEntityNotInSpace = errors.New("entity not in this space")
	ErrDuplicateEntity  = errors.New("entity id already used in this space")
	ErrOutOfBounds      = errors.New("position out of space bounds")
	ErrJobQueueFull     = errors.New("space job queue full")
	ErrIndexCorrupted   = errors.New("job panicked inside an index traversal")
)
