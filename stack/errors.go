package stack

import "errors"

// ErrInvalidState reports an operation called out of sequence
// (spawn with a slab already active, halt/commit with none, anything before StartRun)
var ErrInvalidState = errors.New("invalid state")
