package artmarket

// ReadOnlyKVStore gives read access to the application state. Passing a nil
// key is a programming error and panics.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks keys in [start, end) in ascending order. A nil bound
	// leaves that side of the range open. The range must not be written
	// while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks keys in [start, end) in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write half shared by stores and batches. Passed slices
// must not be modified afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is what every handler works against.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator yields key value pairs until Next returns errors.ErrIteratorDone.
//
//	itr, err := db.Iterator(start, end)
//	if err != nil {
//		return err
//	}
//	defer itr.Release()
//	for {
//		key, value, err := itr.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		} else if err != nil {
//			return err
//		}
//		// use key and value
//	}
type Iterator interface {
	// Next returns the following pair. The returned slices are read only.
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a KVCacheWrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of another store. Reads see the buffered
// writes. Write flushes them to the parent, Discard drops them. Wraps nest, so
// a single handler can be rolled back without losing the rest of the block.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root of the state. Changes are staged in a
// CacheWrap and become durable with Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit writes a new version and returns its id.
	Commit() (CommitID, error)

	// LoadLatestVersion opens the newest complete version, which may be
	// older than the last attempted commit after a crash.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
