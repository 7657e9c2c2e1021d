package artmarketd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/crypto"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/x/cash"
	"github.com/iov-one/artmarket/x/collectible"
	"github.com/iov-one/artmarket/x/marketplace"
)

// DefaultBalance is the amount issued to the owner account of a development
// genesis.
const DefaultBalance = 1000000

// Genesis is the application state understood by Initializers.
type Genesis struct {
	Conf struct {
		Collectible collectible.Configuration `json:"collectible"`
		Marketplace marketplace.Configuration `json:"marketplace"`
	} `json:"conf"`
	Cash        []cash.GenesisAccount `json:"cash"`
	Collectible struct {
		Tokens []collectible.GenesisToken `json:"tokens"`
	} `json:"collectible"`
}

// NewGenesis returns an application state with owner administrating both
// the registry and the marketplace and holding balance coins.
func NewGenesis(owner artmarket.Address, balance uint64) Genesis {
	var g Genesis
	g.Conf.Collectible = collectible.Configuration{
		Owner:       owner,
		Marketplace: marketplace.Custodian,
	}
	g.Conf.Marketplace = marketplace.Configuration{
		Owner:         owner,
		ListingFee:    marketplace.DefaultListingFee,
		AssetRegistry: collectible.Controller{}.Address(),
	}
	g.Cash = []cash.GenesisAccount{{Address: owner, Balance: balance}}
	g.Collectible.Tokens = []collectible.GenesisToken{}
	return g
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// The first argument is the owner address. If not provided, a new key is
// generated and its hex encoded private key printed out. An optional
// second argument sets the owner balance.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner artmarket.Address
	if len(args) > 0 {
		addr, err := artmarket.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		owner = addr
	} else {
		key := crypto.GenPrivKeyEd25519()
		owner = key.PublicKey().Address()
		fmt.Printf("owner private key: %s\n", hex.EncodeToString(key.Ed25519))
	}

	balance := uint64(DefaultBalance)
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "balance: %s", err)
		}
		balance = n
	}

	raw, err := json.MarshalIndent(NewGenesis(owner, balance), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
