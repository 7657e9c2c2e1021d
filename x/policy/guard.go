package policy

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Guard is a reentrancy guard that keeps its state in the store under the
// "_g:<package>" key. Being kept in the store, the flag is scoped to the store
// it was set on and is dropped together with a discarded cache wrap.
type Guard struct {
	key []byte
}

// NewGuard returns a reentrancy guard for given package.
func NewGuard(pkg string) Guard {
	return Guard{key: []byte("_g:" + pkg)}
}

// Run executes fn while holding the guard. It fails with ErrReentrant if the
// guard is already held on db.
func (g Guard) Run(db artmarket.KVStore, fn func() error) error {
	held, err := db.Has(g.key)
	if err != nil {
		return errors.Wrap(err, "cannot read guard")
	}
	if held {
		return errors.Wrap(ErrReentrant, string(g.key[3:]))
	}
	if err := db.Set(g.key, flagSet); err != nil {
		return errors.Wrap(err, "cannot set guard")
	}
	// The guard is released on failure as well.
	fnErr := fn()
	if err := db.Delete(g.key); err != nil {
		return errors.Append(fnErr, errors.Wrap(err, "cannot release guard"))
	}
	return fnErr
}
