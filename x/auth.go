package x

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// Authenticator tells who authorized the current transaction. Extensions get
// one in their constructor instead of reading signatures themselves.
type Authenticator interface {
	// GetConditions lists the fulfilled conditions, main signer first.
	GetConditions(artmarket.Context) []artmarket.Condition
	HasAddress(artmarket.Context, artmarket.Address) bool
}

// ChainAuth merges several Authenticators. Conditions are listed in the
// order of auths.
func ChainAuth(auths ...Authenticator) Authenticator {
	return chain(auths)
}

type chain []Authenticator

func (c chain) GetConditions(ctx artmarket.Context) []artmarket.Condition {
	var all []artmarket.Condition
	for _, a := range c {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (c chain) HasAddress(ctx artmarket.Context, addr artmarket.Address) bool {
	for _, a := range c {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition, or nil.
func MainSigner(ctx artmarket.Context, auth Authenticator) artmarket.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// Caller returns the address of the main signer. An unsigned transaction
// fails with ErrUnauthorized.
func Caller(ctx artmarket.Context, auth Authenticator) (artmarket.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}

// RequireSigner fails with ErrUnauthorized unless addr authorized the
// transaction. Who names addr in the error.
func RequireSigner(ctx artmarket.Context, auth Authenticator, addr artmarket.Address, who string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrUnauthorized, "no %s", who)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s %s did not sign", who, addr)
	}
	return nil
}
