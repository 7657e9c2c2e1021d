package artmarket

import (
	"github.com/iov-one/artmarket/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful DeliverTx. Failures are always
// reported as errors.
type DeliverResult struct {
	// Data is returned to the client, for example the id of a new token.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and let clients search for market
	// events.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags, GasUsed: d.GasUsed}
}

// CheckResult is the outcome of a successful CheckTx.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is reported to tendermint as the wanted gas.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// Tag returns a KVPair that can be attached to a DeliverResult.
func Tag(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}

// DeliverOrError builds the DeliverTx response of a handler call.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckOrError builds the CheckTx response of a handler call.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverTxError returns the response of a failed DeliverTx. Internal error
// details are only exposed in debug mode.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := failure("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError returns the response of a failed CheckTx.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := failure("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// QueryError returns the response of a failed query.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

func failure(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}
