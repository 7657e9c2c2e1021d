package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state part of abci.Application: info, genesis,
// block boundaries, commit and queries. BaseApp adds the transactions.
//
// The ABCI calls that carry no user input cannot report failures to
// tendermint. A failure there means the node cannot go on, so they panic.
type StoreApp struct {
	name        string
	logger      log.Logger
	state       *state
	initializer artmarket.Initializer
	queryRouter artmarket.QueryRouter

	// chainID is empty until the genesis is loaded.
	chainID string

	// baseContext holds what is valid for the lifetime of the node, the
	// chain id and the logger. blockContext extends it with the current
	// block and is replaced on every BeginBlock.
	baseContext  artmarket.Context
	blockContext artmarket.Context
}

// NewStoreApp opens the latest version of db. It panics if the state cannot
// be read.
func NewStoreApp(name string, db artmarket.CommitKVStore, qr artmarket.QueryRouter, ctx artmarket.Context) *StoreApp {
	st, err := openState(db)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		state:       st,
		queryRouter: qr,
		baseContext: ctx,
	}
	s = s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(st.deliver); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.baseContext = artmarket.WithChainID(s.baseContext, s.chainID)
	}
	last, err := st.latest()
	if err != nil {
		panic(err)
	}
	s.blockContext = artmarket.WithHeight(s.baseContext, last.Version)
	return s
}

// WithInit sets the genesis loader.
func (s *StoreApp) WithInit(init artmarket.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every handler context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = artmarket.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger                       { return s.logger }
func (s *StoreApp) GetChainID() string                       { return s.chainID }
func (s *StoreApp) BlockContext() artmarket.Context          { return s.blockContext }
func (s *StoreApp) DeliverStore() artmarket.CacheableKVStore { return s.state.deliver }
func (s *StoreApp) CheckStore() artmarket.CacheableKVStore   { return s.state.check }

// initState runs once, when the chain starts. It stores the chain id and
// hands every app_state section to the initializer.
func (s *StoreApp) initState(chainID string, appState []byte) error {
	switch {
	case s.chainID != "":
		return errors.Wrapf(errors.ErrState, "genesis already loaded for %q", s.chainID)
	case len(appState) == 0:
		return errors.Wrap(errors.ErrState, "genesis has no app_state")
	case s.initializer == nil:
		return errors.Wrap(errors.ErrHuman, "no initializer")
	}
	var opts artmarket.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(s.state.deliver, chainID); err != nil {
		return err
	}
	s.chainID = chainID
	// Transactions checked before the first block use the block context.
	s.baseContext = artmarket.WithChainID(s.baseContext, chainID)
	s.blockContext = artmarket.WithChainID(s.blockContext, chainID)
	return s.initializer.FromGenesis(opts, s.state.deliver)
}

// Info reports the last committed height and hash so that tendermint can
// replay the missing blocks.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          artmarket.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.initState(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock makes the header, and with it the height and block time,
// available to the handlers.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := artmarket.WithHeader(s.baseContext, req.Header)
	s.blockContext = artmarket.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
