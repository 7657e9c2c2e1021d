/*
Package orm keeps typed models in named buckets of a KVStore.

A bucket owns all keys starting with its name followed by a colon. Each
secondary index of a bucket lives under

	_i.<bucket>_<index>:<value>

and holds either a single primary key (unique index) or a sorted set of
primary keys.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// SeqID names the sequence a bucket uses to generate primary keys.
const SeqID = "id"

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
	isIndexName  = regexp.MustCompile(`^[a-z_]{2,20}$`).MatchString
)

// Model is an entity stored in a ModelBucket.
type Model interface {
	artmarket.Persistent
	Validate() error
	Copy() Model
}

// ModelSlicePtr is a pointer to a slice of models, for example *[]Token or
// *[]*Token. The element type is checked when the slice is filled.
type ModelSlicePtr interface{}

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound for a missing key and ErrType if dest cannot hold the
	// bucket model.
	One(db artmarket.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns ErrNotFound if nothing is stored under key.
	Has(db artmarket.ReadOnlyKVStore, key []byte) error

	// ByIndex appends to dest all models the named index holds for key,
	// in primary key order, and returns their primary keys.
	ByIndex(db artmarket.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) (keys [][]byte, err error)

	// Scan appends to dest the models selected by q and returns their
	// primary keys.
	Scan(db artmarket.ReadOnlyKVStore, q ScanQuery, dest ModelSlicePtr) (keys [][]byte, err error)

	// Put validates and stores m. An empty key is replaced by the next
	// value of the ID sequence. An existing model under key is
	// overwritten.
	Put(db artmarket.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes the model stored under key, or returns ErrNotFound.
	Delete(db artmarket.KVStore, key []byte) error

	// Count returns the number of stored models.
	Count(db artmarket.ReadOnlyKVStore) (uint64, error)

	// Register exposes the bucket at /<name> and every index at
	// /<name>/<index>.
	Register(name string, r artmarket.QueryRouter)
}

// ScanQuery narrows a bucket scan.
type ScanQuery struct {
	// After skips all models up to and including this primary key.
	After []byte
	// Reverse iterates from the highest primary key down.
	Reverse bool
	// Limit caps the number of loaded models. Zero means no limit.
	Limit int
	// Filter, when set, keeps only the models it returns true for.
	// Skipped models do not count against the limit.
	Filter func(Model) bool
}

// ModelBucketOption configures a bucket created by NewModelBucket.
type ModelBucketOption func(mb *modelBucket)

// WithIndex adds a secondary index. A unique index refuses to reference two
// models under the same value. It panics if the name is not valid or is
// already taken.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if !isIndexName(name) {
			panic(fmt.Sprintf("illegal index name %q", name))
		}
		if mb.index(name) != nil {
			panic(fmt.Sprintf("index %q registered twice", name))
		}
		mb.indexes = append(mb.indexes, newIndex(mb.name, name, indexer, unique))
	}
}

// WithIDSequence replaces the sequence used to generate primary keys.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = s
	}
}

// NewModelBucket returns a bucket holding models of the same type as m. It
// panics if the name is not valid.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name %q", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	mb := &modelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  tp,
		idSeq:  NewSequence(name, SeqID),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	idSeq   Sequence
	indexes []*index

	// model is the struct type, never a pointer to it.
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey returns a new slice on every call so that results can be kept.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) index(name string) *index {
	for _, idx := range mb.indexes {
		if idx.name == name {
			return idx
		}
	}
	return nil
}

// load returns nil if nothing is stored under key.
func (mb *modelBucket) load(db artmarket.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load")
	}
	if raw == nil {
		return nil, nil
	}
	return mb.decode(raw)
}

func (mb *modelBucket) decode(raw []byte) (Model, error) {
	m := reflect.New(mb.model).Interface().(Model)
	if err := m.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s", mb.model)
	}
	return m, nil
}

func (mb *modelBucket) One(db artmarket.ReadOnlyKVStore, key []byte, dest Model) error {
	if tp := reflect.TypeOf(dest); tp.Kind() != reflect.Ptr || tp.Elem() != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot hold %s", dest, mb.model)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.model.Name(), key)
	}
	return dest.Unmarshal(raw)
}

func (mb *modelBucket) Has(db artmarket.ReadOnlyKVStore, key []byte) error {
	// The stores panic on a nil key.
	if len(key) == 0 {
		return errors.ErrNotFound
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) ByIndex(db artmarket.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	idx := mb.index(indexName)
	if idx == nil {
		return nil, errors.Wrap(ErrInvalidIndex, indexName)
	}
	dest, err := mb.destination(destination)
	if err != nil {
		return nil, err
	}
	refs, err := idx.at(db, key)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		m, err := mb.load(db, ref)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, errors.Wrapf(errors.ErrState, "index %s refers to missing %X", indexName, ref)
		}
		appendModel(dest, m)
	}
	return refs, nil
}

func (mb *modelBucket) Scan(db artmarket.ReadOnlyKVStore, q ScanQuery, destination ModelSlicePtr) ([][]byte, error) {
	dest, err := mb.destination(destination)
	if err != nil {
		return nil, err
	}

	start, end := prefixRange(mb.prefix)
	var itr artmarket.Iterator
	switch {
	case q.Reverse:
		if q.After != nil {
			end = mb.dbKey(q.After)
		}
		itr, err = db.ReverseIterator(start, end)
	default:
		if q.After != nil {
			// Smallest key greater than After.
			start = mb.dbKey(append(append([]byte(nil), q.After...), 0))
		}
		itr, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	defer itr.Release()

	var keys [][]byte
	for q.Limit == 0 || len(keys) < q.Limit {
		key, raw, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
		m, err := mb.decode(raw)
		if err != nil {
			return nil, err
		}
		if q.Filter != nil && !q.Filter(m) {
			continue
		}
		appendModel(dest, m)
		keys = append(keys, key[len(mb.prefix):])
	}
	return keys, nil
}

func (mb *modelBucket) Put(db artmarket.KVStore, key []byte, m Model) ([]byte, error) {
	if tp := reflect.TypeOf(m); tp.Kind() != reflect.Ptr || tp.Elem() != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}

	if len(key) == 0 {
		if key, err = mb.idSeq.NextVal(db); err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}
	if err := mb.reindex(db, key, m); err != nil {
		return nil, err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db artmarket.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := mb.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(mb.dbKey(key))
}

// reindex points every index at next instead of the model currently stored
// under key. A nil next removes the references.
func (mb *modelBucket) reindex(db artmarket.KVStore, key []byte, next Model) error {
	if len(mb.indexes) == 0 {
		return nil
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) Count(db artmarket.ReadOnlyKVStore) (uint64, error) {
	itr, err := db.Iterator(prefixRange(mb.prefix))
	if err != nil {
		return 0, errors.Wrap(err, "cannot create iterator")
	}
	defer itr.Release()

	var n uint64
	for {
		switch _, _, err := itr.Next(); {
		case errors.ErrIteratorDone.Is(err):
			return n, nil
		case err != nil:
			return 0, errors.Wrap(err, "iterator")
		}
		n++
	}
}

func (mb *modelBucket) Register(name string, r artmarket.QueryRouter) {
	root := "/" + name
	r.Register(root, artmarket.QueryHandlerFunc(mb.query))
	for _, idx := range mb.indexes {
		r.Register(root+"/"+idx.name, mb.indexQuery(idx))
	}
}

// query returns raw pairs under their full database key.
func (mb *modelBucket) query(db artmarket.ReadOnlyKVStore, mod string, data []byte) ([]artmarket.Model, error) {
	switch mod {
	case artmarket.KeyQueryMod:
		key := mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []artmarket.Model{artmarket.Pair(key, value)}, nil
	case artmarket.PrefixQueryMod:
		itr, err := db.Iterator(prefixRange(mb.dbKey(data)))
		if err != nil {
			return nil, err
		}
		return ConsumeIterator(itr)
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown mod %q", mod)
	}
}

func (mb *modelBucket) indexQuery(idx *index) artmarket.QueryHandler {
	return artmarket.QueryHandlerFunc(func(db artmarket.ReadOnlyKVStore, mod string, data []byte) ([]artmarket.Model, error) {
		var (
			refs [][]byte
			err  error
		)
		switch mod {
		case artmarket.KeyQueryMod:
			refs, err = idx.at(db, data)
		case artmarket.PrefixQueryMod:
			refs, err = idx.withPrefix(db, data)
		default:
			return nil, errors.Wrapf(errors.ErrHuman, "unknown mod %q", mod)
		}
		if err != nil {
			return nil, err
		}

		res := make([]artmarket.Model, 0, len(refs))
		for _, ref := range refs {
			key := mb.dbKey(ref)
			value, err := db.Get(key)
			if err != nil {
				return nil, err
			}
			if value == nil {
				return nil, errors.Wrapf(errors.ErrState, "index %s refers to missing %X", idx.name, ref)
			}
			res = append(res, artmarket.Pair(key, value))
		}
		return res, nil
	})
}

// destination checks that dest points to a slice of bucket models, or of
// pointers to them.
func (mb *modelBucket) destination(dest ModelSlicePtr) (reflect.Value, error) {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr {
		return v, errors.Wrapf(errors.ErrType, "%T is not a pointer to a slice", dest)
	}
	if v.IsNil() {
		return v, errors.Wrap(errors.ErrImmutable, "nil destination")
	}
	if v = v.Elem(); v.Kind() != reflect.Slice {
		return v, errors.Wrapf(errors.ErrType, "%T is not a pointer to a slice", dest)
	}
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem != mb.model {
		return v, errors.Wrapf(errors.ErrType, "%s bucket cannot fill a slice of %s", mb.name, elem)
	}
	return v, nil
}

func appendModel(dest reflect.Value, m Model) {
	val := reflect.ValueOf(m)
	if dest.Type().Elem().Kind() != reflect.Ptr {
		val = val.Elem()
	}
	dest.Set(reflect.Append(dest, val))
}
