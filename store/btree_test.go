package store

import (
	"testing"

	"github.com/iov-one/artmarket/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, it Iterator) []string {
	t.Helper()
	defer it.Release()
	var res []string
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, string(key)+"="+string(value))
	}
}

func set(t *testing.T, db KVStore, pairs ...string) {
	t.Helper()
	for i := 0; i < len(pairs); i += 2 {
		require.NoError(t, db.Set([]byte(pairs[i]), []byte(pairs[i+1])))
	}
}

func TestMemStore(t *testing.T) {
	db := MemStore()
	set(t, db, "token:2", "b", "token:1", "a", "token:3", "c")
	require.NoError(t, db.Delete([]byte("token:3")))
	require.NoError(t, db.Delete([]byte("missing")))

	v, err := db.Get([]byte("token:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), v)
	v, err = db.Get([]byte("token:3"))
	require.NoError(t, err)
	assert.Nil(t, v)
	has, err := db.Has([]byte("token:2"))
	require.NoError(t, err)
	assert.True(t, has)

	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"token:1=a", "token:2=b"}, collect(t, it))
	it, err = db.ReverseIterator([]byte("token:1"), []byte("token:2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"token:1=a"}, collect(t, it))
}

func TestCacheHidesChangesUntilWrite(t *testing.T) {
	db := MemStore()
	set(t, db, "item:1", "listed", "item:2", "listed")

	c := db.CacheWrap()
	set(t, c, "item:3", "listed", "item:1", "sold")
	require.NoError(t, c.Delete([]byte("item:2")))

	v, err := c.Get([]byte("item:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("sold"), v)
	has, err := c.Has([]byte("item:2"))
	require.NoError(t, err)
	assert.False(t, has)

	v, err = db.Get([]byte("item:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("listed"), v)

	require.NoError(t, c.Write())
	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"item:1=sold", "item:3=listed"}, collect(t, it))

	// A written cache is empty and reads through again.
	set(t, db, "item:4", "listed")
	v, err = c.Get([]byte("item:4"))
	require.NoError(t, err)
	assert.Equal(t, []byte("listed"), v)
}

func TestNestedCacheDiscard(t *testing.T) {
	db := MemStore()
	set(t, db, "a", "A")

	outer := db.CacheWrap()
	set(t, outer, "b", "B")
	inner := outer.CacheWrap()
	set(t, inner, "c", "C")
	require.NoError(t, inner.Delete([]byte("a")))
	inner.Discard()

	v, err := outer.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("A"), v)
	has, err := outer.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, outer.Write())
	v, err = db.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("B"), v)
}

func TestCacheIterator(t *testing.T) {
	db := MemStore()
	set(t, db, "k1", "parent", "k3", "parent", "k5", "parent", "k7", "parent")
	c := db.CacheWrap()
	set(t, c, "k2", "cache", "k3", "cache", "k8", "cache")
	require.NoError(t, c.Delete([]byte("k5")))
	require.NoError(t, c.Delete([]byte("k6")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"full range": {
			want: []string{"k1=parent", "k2=cache", "k3=cache", "k7=parent", "k8=cache"},
		},
		"full range reversed": {
			reverse: true,
			want:    []string{"k8=cache", "k7=parent", "k3=cache", "k2=cache", "k1=parent"},
		},
		"bounded": {
			start: []byte("k2"),
			end:   []byte("k7"),
			want:  []string{"k2=cache", "k3=cache"},
		},
		"bounded reversed": {
			start:   []byte("k3"),
			end:     []byte("k9"),
			reverse: true,
			want:    []string{"k8=cache", "k7=parent", "k3=cache"},
		},
		"open start": {
			end:  []byte("k3"),
			want: []string{"k1=parent", "k2=cache"},
		},
		"only deleted keys": {
			start: []byte("k5"),
			end:   []byte("k7"),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var it Iterator
			var err error
			if tc.reverse {
				it, err = c.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = c.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, collect(t, it))
		})
	}
}

func TestReleaseBeforeWrite(t *testing.T) {
	db := MemStore()
	set(t, db, "a", "A")
	c := db.CacheWrap()

	it, err := c.Iterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	it.Release()
	rit, err := c.ReverseIterator([]byte("a"), []byte("z"))
	require.NoError(t, err)
	rit.Release()
	require.NoError(t, db.Delete([]byte("a")))
}
