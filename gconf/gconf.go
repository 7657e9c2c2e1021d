package gconf

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// ReadStore is the part of artmarket.ReadOnlyKVStore needed to load a
// configuration.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of artmarket.KVStore needed to save one.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is the singleton settings object of an extension.
type Configuration interface {
	artmarket.Persistent
	Validate() error
}

// key returns where the configuration of pkg is stored.
func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save stores conf as the configuration of pkg once it validates.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. It fails with ErrNotFound if
// none was saved.
func Load(db ReadStore, pkg string, dst artmarket.Persistent) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(err, "load %s configuration", pkg)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig reads the genesis section conf.<pkg> into conf and saves it.
func InitConfig(db Store, opts artmarket.Options, pkg string, conf Configuration) error {
	var all artmarket.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}
