package collectible

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
)

const configPkg = "collectible"

// Configuration is the registry configuration. It is stored with gconf under
// the "collectible" package name.
type Configuration struct {
	// Owner may pause minting, set the marketplace and update this
	// configuration.
	Owner artmarket.Address `json:"owner"`
	// Marketplace is the operator that may move custody of any token.
	Marketplace artmarket.Address `json:"marketplace"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	errs := errors.AppendField(nil, "Owner", c.Owner.Validate())
	if len(c.Marketplace) != 0 {
		errs = errors.AppendField(errs, "Marketplace", c.Marketplace.Validate())
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
