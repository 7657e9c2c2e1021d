package orm

import (
	"bytes"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

const indexPrefix = "_i."

// Indexer returns the value a model is indexed under. A nil value leaves the
// model out of the index.
type Indexer func(Model) ([]byte, error)

type index struct {
	name    string
	prefix  []byte
	unique  bool
	indexer Indexer
}

func newIndex(bucket, name string, indexer Indexer, unique bool) *index {
	return &index{
		name:    name,
		prefix:  []byte(indexPrefix + bucket + "_" + name + ":"),
		unique:  unique,
		indexer: indexer,
	}
}

func (i *index) key(value []byte) []byte {
	out := make([]byte, len(i.prefix)+len(value))
	copy(out, i.prefix)
	copy(out[len(i.prefix):], value)
	return out
}

func (i *index) value(m Model) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	v, err := i.indexer(m)
	if err != nil {
		return nil, errors.Wrapf(err, "index %s", i.name)
	}
	return v, nil
}

// update moves the reference to pk from the value of prev to the value of
// next. Either model may be nil.
func (i *index) update(db artmarket.KVStore, pk []byte, prev, next Model) error {
	from, err := i.value(prev)
	if err != nil {
		return err
	}
	to, err := i.value(next)
	if err != nil {
		return err
	}
	if from != nil && to != nil && bytes.Equal(from, to) {
		return nil
	}
	if from != nil {
		if err := i.remove(db, from, pk); err != nil {
			return err
		}
	}
	if to != nil {
		return i.insert(db, to, pk)
	}
	return nil
}

func (i *index) remove(db artmarket.KVStore, value, pk []byte) error {
	key := i.key(value)
	raw, err := db.Get(key)
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot load index")
	case raw == nil:
		return errors.Wrapf(errors.ErrState, "index %s has no entry at %X", i.name, value)
	}

	if i.unique {
		if !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrState, "index %s at %X points to %X", i.name, value, raw)
		}
		return db.Delete(key)
	}

	var refs refSet
	if err := refs.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "cannot decode index")
	}
	if !refs.remove(pk) {
		return errors.Wrapf(errors.ErrState, "index %s at %X misses %X", i.name, value, pk)
	}
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	return i.store(db, key, &refs)
}

func (i *index) insert(db artmarket.KVStore, value, pk []byte) error {
	key := i.key(value)
	raw, err := db.Get(key)
	if err != nil {
		return errors.Wrap(err, "cannot load index")
	}

	if i.unique {
		if raw != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s at %X", i.name, value)
		}
		return db.Set(key, pk)
	}

	var refs refSet
	if raw != nil {
		if err := refs.Unmarshal(raw); err != nil {
			return errors.Wrap(err, "cannot decode index")
		}
	}
	if !refs.add(pk) {
		return errors.Wrapf(errors.ErrDuplicate, "index %s at %X already holds %X", i.name, value, pk)
	}
	return i.store(db, key, &refs)
}

func (i *index) store(db artmarket.KVStore, key []byte, refs *refSet) error {
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

// at returns the primary keys stored under value in ascending order.
func (i *index) at(db artmarket.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.key(value))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load index")
	}
	return i.refs(raw)
}

// withPrefix returns the primary keys of all values starting with prefix,
// grouped by value in ascending order.
func (i *index) withPrefix(db artmarket.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	itr, err := db.Iterator(prefixRange(i.key(prefix)))
	if err != nil {
		return nil, err
	}
	defer itr.Release()

	var all [][]byte
	for {
		_, raw, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		refs, err := i.refs(raw)
		if err != nil {
			return nil, err
		}
		all = append(all, refs...)
	}
}

func (i *index) refs(raw []byte) ([][]byte, error) {
	switch {
	case raw == nil:
		return nil, nil
	case i.unique:
		return [][]byte{raw}, nil
	}
	var refs refSet
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "cannot decode index")
	}
	return refs.Refs, nil
}
