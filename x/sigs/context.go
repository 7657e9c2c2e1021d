package sigs

import (
	"context"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/x"
)

type signersKey struct{}

// withSigners is private so that only the Decorator can authenticate.
func withSigners(ctx artmarket.Context, signers []artmarket.Condition) artmarket.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reports the keys the Decorator verified.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx artmarket.Context) []artmarket.Condition {
	signers, _ := ctx.Value(signersKey{}).([]artmarket.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx artmarket.Context, addr artmarket.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
