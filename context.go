package artmarket

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/artmarket/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information and the logger through the handlers.
type Context = context.Context

type ctxKey uint8

const (
	ctxHeader ctxKey = iota + 1
	ctxHeight
	ctxChainID
	ctxLogger
	ctxTime
)

var (
	// DefaultLogger is returned by GetLogger when none was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 characters of [a-zA-Z0-9_-].
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// once stores value under key and panics if the key is already present. Block
// values are written by the app once per block and must never be replaced by
// a handler.
func once(ctx Context, key ctxKey, value interface{}, name string) Context {
	if ctx.Value(key) != nil {
		panic(name + " already set")
	}
	return context.WithValue(ctx, key, value)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return once(ctx, ctxHeader, header, "header")
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(ctxHeader).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return once(ctx, ctxHeight, height, "height")
}

// GetHeight returns the explicit height or the height of the block header.
func GetHeight(ctx Context) (int64, bool) {
	if height, ok := ctx.Value(ctxHeight).(int64); ok {
		return height, true
	}
	if h, ok := GetHeader(ctx); ok {
		return h.Height, true
	}
	return 0, false
}

func WithBlockTime(ctx Context, t time.Time) Context {
	return once(ctx, ctxTime, t, "block time")
}

// BlockTime returns the explicit block time or the time of the block header.
func BlockTime(ctx Context) (time.Time, error) {
	if t, ok := ctx.Value(ctxTime).(time.Time); ok {
		return t, nil
	}
	if h, ok := GetHeader(ctx); ok && !h.Time.IsZero() {
		return h.Time, nil
	}
	return time.Time{}, errors.Wrap(errors.ErrState, "no block time")
}

// WithChainID panics if the id is invalid or a chain id is already set.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return once(ctx, ctxChainID, chainID, "chain id")
}

// GetChainID panics if the app did not set the chain id. Every context passed
// to a handler has one.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(ctxChainID).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, ctxLogger, logger)
}

// WithLogInfo attaches keyvals to every line logged through the returned
// context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(ctxLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}
