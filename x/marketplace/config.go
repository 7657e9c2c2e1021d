package marketplace

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
)

const configPkg = "marketplace"

// DefaultListingFee is used when the genesis configuration does not declare a
// listing fee.
const DefaultListingFee uint64 = 10

// Configuration is the ledger configuration stored with gconf under the
// "marketplace" package name.
type Configuration struct {
	// Owner receives listing fees and may change this configuration.
	Owner artmarket.Address `json:"owner"`
	// ListingFee is the exact amount a seller pays to list an item.
	ListingFee uint64 `json:"listing_fee"`
	// AssetRegistry is the address of the token registry the ledger
	// works with. Listing is not possible until it is set.
	AssetRegistry artmarket.Address `json:"asset_registry"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	errs := errors.AppendField(nil, "Owner", c.Owner.Validate())
	if len(c.AssetRegistry) != 0 {
		errs = errors.AppendField(errs, "AssetRegistry", c.AssetRegistry.Validate())
	}
	return errs
}

func (c *Configuration) GetOwner() artmarket.Address {
	return c.Owner
}

func (c *Configuration) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, c)
}

func loadConfig(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
