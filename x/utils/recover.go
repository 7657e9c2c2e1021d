package utils

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Recovery turns a panic further down the chain into an ErrPanic failure of
// the transaction and logs it.
type Recovery struct{}

var _ artmarket.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (_ *artmarket.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (_ *artmarket.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recoverTx must be deferred directly.
func recoverTx(ctx artmarket.Context, tx artmarket.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	artmarket.GetLogger(ctx).Error("transaction panic", "path", artmarket.GetPath(tx), "panic", r)
}
