package collectible

import "github.com/iov-one/artmarket/errors"

// x/collectible reserves 1000 ~ 1099.
var (
	ErrInvalidRoyalty    = errors.ErrInput.Register(1000, "royalty out of range")
	ErrInvalidMetadata   = errors.ErrInput.Register(1001, "invalid metadata reference")
	ErrDuplicateMetadata = errors.ErrDuplicate.Register(1002, "metadata reference already in use")
	ErrTokenNotFound     = errors.ErrNotFound.Register(1003, "token not found")
	ErrNotOwner          = errors.ErrUnauthorized.Register(1004, "sender does not own the token")
)
