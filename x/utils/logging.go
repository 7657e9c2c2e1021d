package utils

import (
	"time"

	"github.com/iov-one/artmarket"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes a line for every processed transaction with its message
// path and the time it took. Failures are logged as errors. A successful
// check is logged at debug level and a successful deliver at info level.
type Logging struct{}

var _ artmarket.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (*artmarket.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start, err)
	if err != nil {
		logger.Error("check failed")
	} else {
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (*artmarket.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start, err)
	if err != nil {
		logger.Error("deliver failed")
	} else {
		logger.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx artmarket.Context, tx artmarket.Tx, start time.Time, err error) log.Logger {
	logger := artmarket.GetLogger(ctx).With(
		"path", artmarket.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	if err != nil {
		logger = logger.With("err", err)
	}
	return logger
}
