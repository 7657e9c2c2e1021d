package app

import (
	"reflect"

	"github.com/iov-one/artmarket"
)

// Decorators is a stack of decorators waiting for the handler it wraps.
//
//	h := app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
//
// The first decorator sees the transaction first.
type Decorators struct {
	chain []artmarket.Decorator
}

// ChainDecorators starts a stack. Nil decorators are skipped, so that
// optional ones can be passed unconditionally.
func ChainDecorators(ds ...artmarket.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with ds appended. d is left unmodified.
func (d Decorators) Chain(ds ...artmarket.Decorator) Decorators {
	chain := make([]artmarket.Decorator, len(d.chain), len(d.chain)+len(ds))
	copy(chain, d.chain)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d artmarket.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h artmarket.Handler) artmarket.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{decorator: d.chain[i], next: h}
	}
	return h
}

type decorated struct {
	decorator artmarket.Decorator
	next      artmarket.Handler
}

func (d decorated) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
