// Package artmarketd assembles the extensions into the marketplace node
// application.
package artmarketd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/app"
	"github.com/iov-one/artmarket/commands/server"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store/iavl"
	"github.com/iov-one/artmarket/x"
	"github.com/iov-one/artmarket/x/cash"
	"github.com/iov-one/artmarket/x/collectible"
	"github.com/iov-one/artmarket/x/marketplace"
	"github.com/iov-one/artmarket/x/sigs"
	"github.com/iov-one/artmarket/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the abci Info call.
const Name = "artmarket"

// Controllers groups the extension controllers sharing one store.
type Controllers struct {
	Cash        cash.Controller
	Collectible collectible.Controller
	Marketplace marketplace.Controller
}

// NewControllers wires the marketplace ledger to the token registry and the
// cash wallets.
func NewControllers(logger log.Logger) Controllers {
	coins := cash.NewController(cash.NewBucket())
	registry := collectible.NewController().WithLogger(logger)
	return Controllers{
		Cash:        coins,
		Collectible: registry,
		Marketplace: marketplace.NewController(registry, coins).WithLogger(logger),
	}
}

// Handler returns the decorated router of all messages. Signatures are the
// only authentication. The check savepoint keeps failed transactions out of
// the mempool state. The deliver savepoint sits below the signature check,
// so that a failed message still consumes the nonce.
func (c Controllers) Handler(metrics artmarket.Decorator) artmarket.Handler {
	auth := x.ChainAuth(sigs.Authenticate{})

	r := app.NewRouter()
	sigs.RegisterRoutes(r, auth)
	cash.RegisterRoutes(r, auth, c.Cash)
	collectible.RegisterRoutes(r, auth, c.Collectible)
	marketplace.RegisterRoutes(r, auth, c.Marketplace)

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
}

// Queries serves "/", "/wallets", "/auth", "/tokens" and "/market".
func (c Controllers) Queries() artmarket.QueryRouter {
	qr := artmarket.NewQueryRouter()
	qr.RegisterAll(
		app.RegisterQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
		collectible.RegisterQuery,
		c.Marketplace.RegisterQuery,
	)
	return qr
}

// Initializers returns the genesis loaders of all extensions. The
// marketplace configuration references the registry, so the registry is
// loaded first.
func Initializers() artmarket.Initializer {
	return app.ChainInitializers(
		&cash.Initializer{},
		&collectible.Initializer{},
		&marketplace.Initializer{},
	)
}

// GenerateApp builds the node application. Without a home directory the
// state is kept in memory.
func GenerateApp(cfg server.Config, logger log.Logger, reg prometheus.Registerer) (abci.Application, error) {
	metrics, err := utils.NewMetrics(Name, reg)
	if err != nil {
		return nil, err
	}
	var dbPath string
	if cfg.Home != "" {
		dbPath = cfg.DBPath()
	}
	kv, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}

	ctrl := NewControllers(logger)
	state := app.NewStoreApp(Name, kv, ctrl.Queries(), context.Background())
	base := app.NewBaseApp(state, TxDecoder, ctrl.Handler(metrics), cfg.Debug)
	base.WithInit(Initializers())
	base.WithLogger(logger)
	return base, nil
}

// openStore opens the iavl tree stored at dbPath. A trailing extension is
// dropped, so "data/state.db" and "data/state" name the same store.
func openStore(dbPath string) (artmarket.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
