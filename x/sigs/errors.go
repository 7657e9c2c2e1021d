package sigs

import "github.com/iov-one/artmarket/errors"

// Codes 20 to 29 belong to this package.
var (
	ErrInvalidSequence  = errors.ErrUnauthorized.Register(20, "invalid sequence")
	ErrInvalidSignature = errors.ErrUnauthorized.Register(21, "invalid signature")
)
