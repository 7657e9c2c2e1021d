package artmarkettest

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/store/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// MemCommitKVStore returns the production iavl commit store on top of an in
// memory database.
func MemCommitKVStore() artmarket.CommitKVStore {
	return iavl.NewCommitStoreFromDB(dbm.NewMemDB())
}
