package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Genesis is the part of the tendermint genesis file read by the app.
type Genesis struct {
	ChainID  string            `json:"chain_id"`
	AppState artmarket.Options `json:"app_state"`
}

func loadGenesis(path string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot read genesis: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}
	return gen, nil
}

// LoadGenesis initializes the state from a genesis file instead of an
// InitChain call, for running the app without tendermint.
func (s *StoreApp) LoadGenesis(path string, init artmarket.Initializer) error {
	gen, err := loadGenesis(path)
	if err != nil {
		return err
	}
	appState, err := json.Marshal(gen.AppState)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	s.initializer = init
	return s.initState(gen.ChainID, appState)
}

// ChainInitializers returns an initializer calling each of inits in order.
// The first failure stops the genesis.
func ChainInitializers(inits ...artmarket.Initializer) artmarket.Initializer {
	return initializers(inits)
}

type initializers []artmarket.Initializer

func (list initializers) FromGenesis(opts artmarket.Options, db artmarket.KVStore) error {
	for _, init := range list {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
