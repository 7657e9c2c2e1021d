package app

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the complete abci.Application: a StoreApp that decodes
// transactions and passes them to a handler.
type BaseApp struct {
	*StoreApp
	decode  artmarket.TxDecoder
	handler artmarket.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application running every transaction through
// handler. In debug mode internal error details are returned to clients.
func NewBaseApp(store *StoreApp, decode artmarket.TxDecoder, handler artmarket.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decode: decode, handler: handler, debug: debug}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return artmarket.CheckTxError(err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return artmarket.CheckOrError(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return artmarket.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return artmarket.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx artmarket.Tx) artmarket.Context {
	return artmarket.WithLogInfo(b.BlockContext(), "call", call, "path", artmarket.GetPath(tx))
}

// decodeTx turns a decoder panic on malformed input into an error.
func (b BaseApp) decodeTx(raw []byte) (tx artmarket.Tx, err error) {
	defer errors.Recover(&err)
	return b.decode(raw)
}
