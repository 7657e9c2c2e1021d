package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the node size of every in memory tree.
const btreeDegree = 8

// entry is a key of an in memory tree. A deleted entry hides the key of the
// parent store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// ascend returns the entries of t within [start, end) in key order. A nil
// bound leaves that side open.
func ascend(t *btree.BTree, start, end []byte) []entry {
	var res []entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		t.Ascend(collect)
	case start == nil:
		t.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		t.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		t.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return res
}

func reverse(entries []entry) []entry {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// MemStore returns an empty store that lives in memory only. It is used by
// tests and as the scratch space of queries.
func MemStore() CacheableKVStore {
	return BTreeCacheable{KVStore: &memStore{tree: btree.New(btreeDegree)}}
}

type memStore struct {
	tree *btree.BTree
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	if i := m.tree.Get(entry{key: key}); i != nil {
		return i.(entry).value, nil
	}
	return nil, nil
}

func (m *memStore) Has(key []byte) (bool, error) {
	return m.tree.Has(entry{key: key}), nil
}

func (m *memStore) Set(key, value []byte) error {
	m.tree.ReplaceOrInsert(entry{key: key, value: value})
	return nil
}

func (m *memStore) Delete(key []byte) error {
	m.tree.Delete(entry{key: key})
	return nil
}

func (m *memStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(models(ascend(m.tree, start, end))), nil
}

func (m *memStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(models(reverse(ascend(m.tree, start, end)))), nil
}

func models(entries []entry) []Model {
	res := make([]Model, len(entries))
	for i, e := range entries {
		res[i] = Model{Key: e.key, Value: e.value}
	}
	return res
}

// BTreeCacheable gives any store a CacheWrap that buffers the changes in a
// btree until they are written.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return newCache(b.KVStore)
}

// cache buffers writes on top of parent. Reads merge both layers.
type cache struct {
	parent KVStore
	dirty  *btree.BTree
}

var _ KVCacheWrap = (*cache)(nil)

func newCache(parent KVStore) *cache {
	return &cache{parent: parent, dirty: btree.New(btreeDegree)}
}

func (c *cache) CacheWrap() KVCacheWrap {
	return newCache(c)
}

// Write applies the buffered changes to the parent in key order and empties
// the cache.
func (c *cache) Write() error {
	for _, e := range ascend(c.dirty, nil, nil) {
		var err error
		if e.deleted {
			err = c.parent.Delete(e.key)
		} else {
			err = c.parent.Set(e.key, e.value)
		}
		if err != nil {
			return err
		}
	}
	c.Discard()
	return nil
}

func (c *cache) Discard() {
	c.dirty.Clear(false)
}

func (c *cache) Set(key, value []byte) error {
	c.dirty.ReplaceOrInsert(entry{key: key, value: value})
	return nil
}

func (c *cache) Delete(key []byte) error {
	c.dirty.ReplaceOrInsert(entry{key: key, deleted: true})
	return nil
}

func (c *cache) Get(key []byte) ([]byte, error) {
	if i := c.dirty.Get(entry{key: key}); i != nil {
		if e := i.(entry); !e.deleted {
			return e.value, nil
		}
		return nil, nil
	}
	return c.parent.Get(key)
}

func (c *cache) Has(key []byte) (bool, error) {
	if i := c.dirty.Get(entry{key: key}); i != nil {
		return !i.(entry).deleted, nil
	}
	return c.parent.Has(key)
}

func (c *cache) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergedIterator{own: ascend(c.dirty, start, end), parent: parent, ascending: true}, nil
}

func (c *cache) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergedIterator{own: reverse(ascend(c.dirty, start, end)), parent: parent}, nil
}
