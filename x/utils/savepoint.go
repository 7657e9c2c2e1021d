package utils

import (
	"github.com/iov-one/artmarket"
)

// Savepoint runs the rest of the chain on a cache wrap of the store and
// writes the changes back only if the call succeeds. Check and deliver are
// enabled separately. A store that cannot be cache wrapped is used directly.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ artmarket.Decorator = Savepoint{}

// NewSavepoint returns a disabled savepoint. Use OnCheck and OnDeliver to
// enable it.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver enables the savepoint for deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (*artmarket.CheckResult, error) {
	if !s.check {
		return next.Check(ctx, db, tx)
	}
	var res *artmarket.CheckResult
	err := savepoint(db, func(db artmarket.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (*artmarket.DeliverResult, error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *artmarket.DeliverResult
	err := savepoint(db, func(db artmarket.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func savepoint(db artmarket.KVStore, fn func(artmarket.KVStore) error) error {
	if _, ok := db.(artmarket.CacheableKVStore); !ok {
		return fn(db)
	}
	return Atomic(db, fn)
}
