package collectible

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
)

// GenesisToken is a token minted at chain start.
type GenesisToken struct {
	Creator     artmarket.Address `json:"creator"`
	MetadataRef string            `json:"metadata_ref"`
	Royalty     uint32            `json:"royalty"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file. The registry configuration is read from "conf.collectible"
// and the tokens to mint from "collectible.tokens".
type Initializer struct{}

var _ artmarket.Initializer = Initializer{}

func (Initializer) FromGenesis(opts artmarket.Options, db artmarket.KVStore) error {
	if err := gconf.InitConfig(db, opts, configPkg, &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var genesis struct {
		Tokens []GenesisToken `json:"tokens"`
	}
	if err := opts.ReadOptions("collectible", &genesis); err != nil {
		return err
	}
	ctrl := NewController()
	for i, t := range genesis.Tokens {
		if _, err := ctrl.Mint(db, t.Creator, t.MetadataRef, t.Royalty); err != nil {
			return errors.Wrapf(err, "token %d", i)
		}
	}
	return nil
}
