package utils

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Atomic runs fn on a cache wrap of db. Changes made by fn are written to db
// only if fn succeeds, otherwise all of them are dropped. Calls can be nested,
// each level wrapping the store of its parent.
func Atomic(db artmarket.KVStore, fn func(db artmarket.KVStore) error) error {
	cstore, ok := db.(artmarket.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrHuman, "%T store cannot be cache wrapped", db)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
