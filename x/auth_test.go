package x

import (
	"context"
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/artmarkettest/assert"
	"github.com/iov-one/artmarket/errors"
)

func TestChainAuth(t *testing.T) {
	buyer := artmarkettest.NewCondition()
	seller := artmarkettest.NewCondition()
	stranger := artmarkettest.NewCondition()

	fromCtx := &artmarkettest.CtxAuth{Key: "signers"}
	ctx := fromCtx.SetConditions(context.Background(), seller)

	cases := map[string]struct {
		auth     Authenticator
		wantMain artmarket.Condition
		wantAll  []artmarket.Condition
	}{
		"nobody": {
			auth: ChainAuth(),
		},
		"fixed": {
			auth:     ChainAuth(&artmarkettest.Auth{Signer: buyer}),
			wantMain: buyer,
			wantAll:  []artmarket.Condition{buyer},
		},
		"merged in order": {
			auth:     ChainAuth(&artmarkettest.Auth{Signer: buyer}, fromCtx),
			wantMain: buyer,
			wantAll:  []artmarket.Condition{buyer, seller},
		},
		"context first": {
			auth:     ChainAuth(fromCtx, &artmarkettest.Auth{Signer: buyer}),
			wantMain: seller,
			wantAll:  []artmarket.Condition{seller, buyer},
		},
		"other context key": {
			auth: ChainAuth(&artmarkettest.CtxAuth{Key: "other"}),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantMain, MainSigner(ctx, tc.auth))
			assert.Equal(t, tc.wantAll, tc.auth.GetConditions(ctx))
			for _, c := range tc.wantAll {
				assert.Equal(t, true, tc.auth.HasAddress(ctx, c.Address()))
			}
			assert.Equal(t, false, tc.auth.HasAddress(ctx, stranger.Address()))
		})
	}
}

func TestCaller(t *testing.T) {
	buyer := artmarkettest.NewCondition()

	addr, err := Caller(context.Background(), &artmarkettest.Auth{Signer: buyer})
	assert.Nil(t, err)
	assert.Equal(t, buyer.Address(), addr)

	_, err = Caller(context.Background(), &artmarkettest.Auth{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestRequireSigner(t *testing.T) {
	owner := artmarkettest.NewCondition()
	auth := &artmarkettest.Auth{Signer: owner}
	ctx := context.Background()

	assert.Nil(t, RequireSigner(ctx, auth, owner.Address(), "owner"))
	assert.IsErr(t, errors.ErrUnauthorized, RequireSigner(ctx, auth, artmarkettest.NewCondition().Address(), "owner"))
	assert.IsErr(t, errors.ErrUnauthorized, RequireSigner(ctx, auth, nil, "owner"))
}
