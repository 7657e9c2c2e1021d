package marketplace

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
)

// Initializer loads the ledger configuration from "conf.marketplace" of the
// genesis file. A configuration without a listing fee gets
// DefaultListingFee.
type Initializer struct{}

var _ artmarket.Initializer = Initializer{}

func (Initializer) FromGenesis(opts artmarket.Options, db artmarket.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, configPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	if conf.ListingFee != 0 {
		return nil
	}
	conf.ListingFee = DefaultListingFee
	return gconf.Save(db, configPkg, &conf)
}
