package policy

import (
	"context"
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/artmarkettest/assert"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store"
)

func TestRequireOwner(t *testing.T) {
	owner := artmarkettest.NewCondition()
	other := artmarkettest.NewCondition()
	ctx := context.Background()

	assert.Nil(t, RequireOwner(ctx, &artmarkettest.Auth{Signer: owner}, owner.Address()))
	assert.IsErr(t, ErrNotOwner, RequireOwner(ctx, &artmarkettest.Auth{Signer: other}, owner.Address()))
	assert.IsErr(t, errors.ErrUnauthorized, RequireOwner(ctx, &artmarkettest.Auth{Signer: other}, owner.Address()))
	assert.IsErr(t, ErrNotOwner, RequireOwner(ctx, &artmarkettest.Auth{Signer: owner}, nil))

	assert.Nil(t, IsOwner(owner.Address(), owner.Address()))
	assert.IsErr(t, ErrNotOwner, IsOwner(other.Address(), owner.Address()))
	assert.IsErr(t, ErrNotOwner, IsOwner(other.Address(), nil))
}

func TestPauser(t *testing.T) {
	db := store.MemStore()
	p := NewPauser("collectible")
	other := NewPauser("marketplace")

	paused, err := p.IsPaused(db)
	assert.Nil(t, err)
	assert.Equal(t, false, paused)
	assert.Nil(t, p.RequireNotPaused(db))
	assert.IsErr(t, ErrNotPaused, p.Unpause(db))

	assert.Nil(t, p.Pause(db))
	paused, err = p.IsPaused(db)
	assert.Nil(t, err)
	assert.Equal(t, true, paused)
	assert.IsErr(t, ErrPaused, p.RequireNotPaused(db))
	assert.IsErr(t, errors.ErrState, p.RequireNotPaused(db))
	assert.IsErr(t, ErrPaused, p.Pause(db))

	// Flags of different packages are independent.
	assert.Nil(t, other.RequireNotPaused(db))

	assert.Nil(t, p.Unpause(db))
	assert.Nil(t, p.RequireNotPaused(db))
}

func TestGuard(t *testing.T) {
	db := store.MemStore()
	g := NewGuard("marketplace")

	var innerErr error
	err := g.Run(db, func() error {
		innerErr = g.Run(db, func() error { return nil })
		return nil
	})
	assert.Nil(t, err)
	assert.IsErr(t, ErrReentrant, innerErr)

	// The guard is released after the call.
	assert.Nil(t, g.Run(db, func() error { return nil }))

	// And after a failed call.
	err = g.Run(db, func() error { return errors.ErrHuman })
	assert.IsErr(t, errors.ErrHuman, err)
	assert.Nil(t, g.Run(db, func() error { return nil }))

	// Guards are scoped to the store.
	other := store.MemStore()
	err = g.Run(db, func() error {
		return g.Run(other, func() error { return nil })
	})
	assert.Nil(t, err)

	has, err := db.Has([]byte("_g:marketplace"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}

// stuckStore fails every delete.
type stuckStore struct {
	artmarket.KVStore
}

func (stuckStore) Delete([]byte) error { return errors.ErrDatabase }

func TestGuardReleaseFailure(t *testing.T) {
	db := stuckStore{KVStore: store.MemStore()}
	g := NewGuard("marketplace")

	assert.IsErr(t, errors.ErrDatabase, g.Run(db, func() error { return nil }))

	// Both the call and the release failures are reported.
	err := g.Run(stuckStore{KVStore: store.MemStore()}, func() error { return errors.ErrHuman })
	assert.IsErr(t, errors.ErrHuman, err)
	assert.IsErr(t, errors.ErrDatabase, err)
}
