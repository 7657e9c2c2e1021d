/*
Package sigs verifies the signatures of a transaction and keeps a nonce per
public key so that a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// gasPerSignature is charged at check time for every verified signature.
const gasPerSignature = 500

// RegisterQuery exposes the signer states at /auth.
func RegisterQuery(qr artmarket.QueryRouter) {
	newUserBucket().Register("auth", qr)
}

// Decorator verifies every signature of a SignedTx and passes the signers
// down the stack, where Authenticate reads them. Transactions that are not
// signed pass through untouched.
type Decorator struct {
	users       userBucket
	allowUnsign bool
}

var _ artmarket.Decorator = Decorator{}

// NewDecorator returns a decorator that refuses a SignedTx without any
// signature.
func NewDecorator() Decorator {
	return Decorator{users: newUserBucket()}
}

// AllowMissingSigs returns a copy that lets a SignedTx without signatures
// through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowUnsign = true
	return d
}

func (d Decorator) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (*artmarket.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * gasPerSignature)
	return res, nil
}

func (d Decorator) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (*artmarket.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns ctx carrying the signers of tx and how many there are.
func (d Decorator) authenticate(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (artmarket.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := verifyTx(db, d.users, stx, artmarket.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowUnsign {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
