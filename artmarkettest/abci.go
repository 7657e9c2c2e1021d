package artmarkettest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is the part of testing.TB that Runner uses.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// TxRunner sends transactions to the application inside of a block.
type TxRunner interface {
	DeliverTx(artmarket.Tx) (*artmarket.DeliverResult, error)
	CheckTx(artmarket.Tx) error
}

// Runner drives an ABCI application the way a tendermint node does: genesis
// first, then blocks of serialized transactions, each one committed. Any
// failure of the block lifecycle ends the test.
type Runner struct {
	t       Tester
	app     abci.Application
	chainID string
	height  int64
}

var _ TxRunner = (*Runner)(nil)

func NewRunner(t Tester, app abci.Application, chainID string) *Runner {
	return &Runner{t: t, app: app, chainID: chainID}
}

// InitChain loads genesis, encoded as JSON, and commits it in the first
// block.
func (r *Runner) InitChain(genesis interface{}) {
	r.t.Helper()

	state, err := json.Marshal(genesis)
	if err != nil {
		r.t.Fatalf("genesis: %s", err)
	}
	before := r.app.Info(abci.RequestInfo{}).LastBlockAppHash
	r.app.InitChain(abci.RequestInitChain{
		Time:          time.Now(),
		ChainId:       r.chainID,
		AppStateBytes: state,
	})
	if after := r.commitBlock(func(TxRunner) error { return nil }); bytes.Equal(before, after) {
		r.t.Fatalf("genesis left the state unchanged")
	}
}

// InBlock runs fn within a new block and commits it. It reports whether the
// app hash changed.
func (r *Runner) InBlock(fn func(TxRunner) error) bool {
	r.t.Helper()
	before := r.app.Info(abci.RequestInfo{}).LastBlockAppHash
	return !bytes.Equal(before, r.commitBlock(fn))
}

func (r *Runner) commitBlock(fn func(TxRunner) error) []byte {
	r.t.Helper()

	r.height++
	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: r.chainID, Height: r.height, Time: time.Now()},
	})
	if err := fn(r); err != nil {
		r.t.Fatalf("block %d: %+v", r.height, err)
	}
	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})
	return r.app.Commit().Data
}

func (r *Runner) CheckTx(tx artmarket.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	res := r.app.CheckTx(raw)
	return resultErr(res.Code, res.Log)
}

func (r *Runner) DeliverTx(tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	res := r.app.DeliverTx(raw)
	if err := resultErr(res.Code, res.Log); err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}

// Query reads the committed state. A failed query ends the test.
func (r *Runner) Query(path string, data []byte) abci.ResponseQuery {
	r.t.Helper()
	res := r.app.Query(abci.RequestQuery{Path: path, Data: data})
	if err := resultErr(res.Code, res.Log); err != nil {
		r.t.Fatalf("query %s: %s", path, err)
	}
	return res
}

// resultErr gives back the registered error of a failed result, so that
// callers can test it with Is.
func resultErr(code uint32, log string) error {
	if code == errors.SuccessABCICode {
		return nil
	}
	return errors.ABCIError(code, log)
}
