package iavl

import (
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore keeps the application state in a versioned iavl tree. Every
// commit saves a new version whose root hash is the app hash.
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens the goleveldb database name in dir.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot open %s/%s: %s", dir, name, err)
	}
	return NewCommitStoreFromDB(db), nil
}

// NewCommitStoreFromDB uses db as the tree storage. With dbm.NewMemDB nothing
// is written to the disk.
func NewCommitStoreFromDB(db dbm.DB) *CommitStore {
	return &CommitStore{db: db, tree: iavl.NewMutableTree(db, DefaultCacheSize)}
}

// Get reads the last saved version, ignoring uncommitted writes.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.GetVersioned(key, s.tree.Version())
	return value, nil
}

func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion opens the newest version that was completely saved.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// CacheWrap buffers changes for the working tree. They are saved by the
// next Commit once the cache is written.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter gives direct access to the working tree.
func (s *CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: working{s.tree}}
}

func (s *CommitStore) Close() {
	s.db.Close()
}

// working is the uncommitted tree seen as a KVStore.
type working struct {
	tree *iavl.MutableTree
}

func (w working) Get(key []byte) ([]byte, error) {
	_, value := w.tree.Get(key)
	return value, nil
}

func (w working) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w working) Set(key, value []byte) error {
	// The tree refuses nil values.
	if value == nil {
		value = []byte{}
	}
	w.tree.Set(key, value)
	return nil
}

func (w working) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

func (w working) Iterator(start, end []byte) (store.Iterator, error) {
	return w.load(start, end, true), nil
}

func (w working) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return w.load(start, end, false), nil
}

// load reads the range up front so that the tree can be written while the
// iterator is in use.
func (w working) load(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	w.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(models)
}
