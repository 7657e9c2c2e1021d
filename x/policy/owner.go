package policy

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/x"
)

// RequireOwner returns an error unless the current transaction is signed by
// the owner.
func RequireOwner(ctx artmarket.Context, auth x.Authenticator, owner artmarket.Address) error {
	if len(owner) == 0 {
		return errors.Wrap(ErrNotOwner, "no owner configured")
	}
	if !auth.HasAddress(ctx, owner) {
		return errors.Wrapf(ErrNotOwner, "%s signature required", owner)
	}
	return nil
}

// IsOwner returns an error unless caller is the owner.
func IsOwner(caller, owner artmarket.Address) error {
	if len(owner) == 0 || !caller.Equals(owner) {
		return errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}
	return nil
}
