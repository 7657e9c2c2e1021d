package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/artmarket/artmarkettest/assert"
	"github.com/iov-one/artmarket/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	a := NewSequence("tokens", "id")
	b := NewSequence("tokens", "other")

	latest, err := a.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)

	var prev []byte
	for i := uint64(1); i <= 300; i++ {
		val, err := a.NextVal(db)
		assert.Nil(t, err)
		assert.Equal(t, i, DecodeSequence(val))
		if prev != nil && bytes.Compare(prev, val) != -1 {
			t.Fatalf("sequence not increasing: %x >= %x", prev, val)
		}
		prev = val
	}

	n, err := b.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), n)

	latest, err = a.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(300), latest)
}
