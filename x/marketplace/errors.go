package marketplace

import "github.com/iov-one/artmarket/errors"

// x/marketplace reserves 1100 ~ 1199.
var (
	ErrPriceTooLow    = errors.ErrInput.Register(1100, "price must be at least 1")
	ErrWrongFee       = errors.ErrInput.Register(1101, "paid fee must equal the listing fee")
	ErrWrongPrice     = errors.ErrInput.Register(1102, "price must equal item price")
	ErrItemNotListed  = errors.ErrConflict.Register(1103, "item hasn't been added for sale")
	ErrNotOwner       = errors.ErrUnauthorized.Register(1104, "sender does not own the item")
	ErrNotSeller      = errors.ErrUnauthorized.Register(1105, "sender is not the seller")
	ErrRegistryNotSet = errors.ErrState.Register(1106, "asset registry not set")
)
