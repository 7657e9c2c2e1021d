package app

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// chainIDKey is stored next to the extension buckets. The "_am:" prefix is
// reserved for the application.
const chainIDKey = "_am:chainID"

// state keeps a committed store together with the two caches tendermint
// writes to. DeliverTx changes become durable on commit, CheckTx changes are
// dropped at the same time.
type state struct {
	committed artmarket.CommitKVStore
	deliver   artmarket.KVCacheWrap
	check     artmarket.KVCacheWrap
}

func openState(db artmarket.CommitKVStore) (*state, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "cannot load latest version")
	}
	s := &state{committed: db}
	s.reset()
	return s, nil
}

func (s *state) reset() {
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
}

func (s *state) latest() (artmarket.CommitID, error) {
	return s.committed.LatestVersion()
}

func (s *state) commit() (artmarket.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return artmarket.CommitID{}, errors.Wrap(err, "cannot flush deliver cache")
	}
	s.check.Discard()
	id, err := s.committed.Commit()
	if err != nil {
		return id, err
	}
	s.reset()
	return id, nil
}

func loadChainID(db artmarket.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "cannot load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id. It can be written only once, by the
// genesis.
func saveChainID(db artmarket.KVStore, chainID string) error {
	if !artmarket.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch has, err := db.Has([]byte(chainIDKey)); {
	case err != nil:
		return errors.Wrap(err, "cannot load chain id")
	case has:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set by the genesis only")
	}
	return db.Set([]byte(chainIDKey), []byte(chainID))
}
