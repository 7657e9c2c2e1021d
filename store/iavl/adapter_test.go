package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func keys(t *testing.T, it store.Iterator) []string {
	t.Helper()
	defer it.Release()
	var res []string
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, string(key))
	}
}

func TestWorkingTree(t *testing.T) {
	db := NewCommitStoreFromDB(dbm.NewMemDB()).Adapter()
	for _, k := range []string{"token:3", "token:1", "token:2"} {
		require.NoError(t, db.Set([]byte(k), []byte("owner")))
	}
	require.NoError(t, db.Set([]byte("burned"), nil))
	require.NoError(t, db.Delete([]byte("token:2")))

	v, err := db.Get([]byte("burned"))
	require.NoError(t, err)
	assert.Equal(t, []byte{}, v)
	has, err := db.Has([]byte("token:2"))
	require.NoError(t, err)
	assert.False(t, has)

	it, err := db.Iterator([]byte("token:"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"token:1", "token:3"}, keys(t, it))
	it, err = db.ReverseIterator(nil, []byte("token:3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"token:1", "burned"}, keys(t, it))
}

func TestCacheOverWorkingTree(t *testing.T) {
	commit := NewCommitStoreFromDB(dbm.NewMemDB())
	require.NoError(t, commit.Adapter().Set([]byte("a"), []byte("1")))

	c := commit.CacheWrap()
	require.NoError(t, c.Set([]byte("b"), []byte("2")))
	require.NoError(t, c.Delete([]byte("a")))
	it, err := c.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys(t, it))

	// Nothing is visible in the committed version before Commit.
	require.NoError(t, c.Write())
	v, err := commit.Get([]byte("b"))
	require.NoError(t, err)
	assert.Nil(t, v)
	_, err = commit.Commit()
	require.NoError(t, err)
	v, err = commit.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestCommitAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "base")
	require.NoError(t, err)
	c := commit.CacheWrap()
	require.NoError(t, c.Set([]byte("token:1"), []byte("minted")))
	require.NoError(t, c.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)
	commit.Close()

	reopened, err := NewCommitStore(dir, "base")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
	v, err := reopened.Get([]byte("token:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("minted"), v)
}
