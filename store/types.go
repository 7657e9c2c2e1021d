package store

import "github.com/iov-one/artmarket"

// Short names for the storage interfaces of the root package.
type (
	ReadOnlyKVStore  = artmarket.ReadOnlyKVStore
	SetDeleter       = artmarket.SetDeleter
	KVStore          = artmarket.KVStore
	Iterator         = artmarket.Iterator
	CacheableKVStore = artmarket.CacheableKVStore
	KVCacheWrap      = artmarket.KVCacheWrap
	CommitKVStore    = artmarket.CommitKVStore
	CommitID         = artmarket.CommitID
	Model            = artmarket.Model
)
