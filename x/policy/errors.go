package policy

import (
	"github.com/iov-one/artmarket/errors"
)

// Reserved codes 140~149
var (
	ErrPaused    = errors.ErrState.Register(140, "paused")
	ErrNotPaused = errors.ErrState.Register(141, "not paused")
	ErrReentrant = errors.ErrState.Register(142, "reentrant call")
	ErrNotOwner  = errors.ErrUnauthorized.Register(143, "not the owner")
)
