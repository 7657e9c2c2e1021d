package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/artmarket/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd writes the application state produced by gen into the genesis
// file. The genesis file is created by "tendermint init" and must already
// exist. An already present app_state is only replaced when the -f flag is
// given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force := false
	if len(args) > 0 && args[0] == "-f" {
		force = true
		args = args[1:]
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written to genesis", "path", genFile)
	return nil
}

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", filename)
		}
		return errors.Wrapf(errors.ErrInput, "cannot read genesis: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse genesis: %s", err)
	}

	if state, ok := doc["app_state"]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrap(errors.ErrState, "app_state already set, use -f to overwrite")
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
