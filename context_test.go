package artmarket

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iov-one/artmarket/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockValuesAreSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { GetChainID(ctx) })

	ctx = WithHeight(ctx, 40)
	ctx = WithChainID(ctx, "art-market")
	ctx = WithBlockTime(ctx, time.Unix(1500, 0))

	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(40), height)
	assert.Equal(t, "art-market", GetChainID(ctx))

	assert.Panics(t, func() { WithHeight(ctx, 41) })
	assert.Panics(t, func() { WithChainID(ctx, "other-market") })
	assert.Panics(t, func() { WithBlockTime(ctx, time.Now()) })
}

func TestHeaderFallback(t *testing.T) {
	now := time.Now().UTC()
	ctx := WithHeader(context.Background(), abci.Header{Height: 12, Time: now})

	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(12), height)
	bt, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, bt)

	// An explicit value wins over the header.
	ctx = WithHeight(ctx, 3)
	height, _ = GetHeight(ctx)
	assert.Equal(t, int64(3), height)

	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })

	_, err = BlockTime(context.Background())
	assert.True(t, errors.ErrState.Is(err))
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewTMLogger(os.Stdout)
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	tagged := WithLogInfo(ctx, "token", 7)
	assert.NotEqual(t, GetLogger(ctx), GetLogger(tagged))
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"art":                           false,
		"market":                        true,
		"art-market_01":                 true,
		"art;market":                    false,
		"this-chain-id-is-way-too-long": false,
	}
	for id, want := range cases {
		t.Run(id, func(t *testing.T) {
			assert.Equal(t, want, IsValidChainID(id))
		})
	}
	assert.Panics(t, func() { WithChainID(context.Background(), "art") })
}
