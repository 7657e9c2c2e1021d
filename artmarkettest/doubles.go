package artmarkettest

import (
	"context"

	"github.com/iov-one/artmarket"
)

// Auth authenticates a fixed set of conditions. Signer and Signers are
// combined.
type Auth struct {
	Signer  artmarket.Condition
	Signers []artmarket.Condition
}

func (a *Auth) GetConditions(artmarket.Context) []artmarket.Condition {
	conds := append([]artmarket.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx artmarket.Context, addr artmarket.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key, so
// that a single router can serve many signers.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context in which conds are signing.
func (a *CtxAuth) SetConditions(ctx artmarket.Context, conds ...artmarket.Condition) artmarket.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx artmarket.Context) []artmarket.Condition {
	conds, _ := ctx.Value(a.Key).([]artmarket.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx artmarket.Context, addr artmarket.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []artmarket.Condition, addr artmarket.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// calls counts the check and deliver invocations of a double.
type calls struct {
	checks, delivers int
}

func (c *calls) CheckCallCount() int   { return c.checks }
func (c *calls) DeliverCallCount() int { return c.delivers }
func (c *calls) CallCount() int        { return c.checks + c.delivers }

// Handler returns its configured result or error and counts the calls.
type Handler struct {
	calls
	CheckResult   artmarket.CheckResult
	CheckErr      error
	DeliverResult artmarket.DeliverResult
	DeliverErr    error
}

var _ artmarket.Handler = (*Handler)(nil)

func (h *Handler) Check(artmarket.Context, artmarket.KVStore, artmarket.Tx) (*artmarket.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(artmarket.Context, artmarket.KVStore, artmarket.Tx) (*artmarket.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator counts the calls and passes the transaction on, unless one of
// the errors is set.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ artmarket.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Checker) (*artmarket.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx, next artmarket.Deliverer) (*artmarket.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Tx carries Msg, or fails with Err. It is never serialized.
type Tx struct {
	Msg artmarket.Msg
	Err error
}

var _ artmarket.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (artmarket.Msg, error) { return tx.Msg, tx.Err }
func (tx *Tx) Marshal() ([]byte, error)       { panic("artmarkettest.Tx cannot be marshaled") }
func (tx *Tx) Unmarshal([]byte) error         { panic("artmarkettest.Tx cannot be unmarshaled") }

// Msg is routed to RoutePath. Its binary form is Serialized and every method
// fails with Err when set.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ artmarket.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
