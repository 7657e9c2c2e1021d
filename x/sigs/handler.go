package sigs

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/x"
)

// RegisterRoutes adds the sequence bump handler.
func RegisterRoutes(r artmarket.Registry, auth x.Authenticator) {
	r.Handle(&BumpSequenceMsg{}, &bumpHandler{auth: auth, users: newUserBucket()})
}

// bumpHandler moves the sequence of the main signer ahead, making any
// transaction signed in advance with the skipped nonces invalid.
type bumpHandler struct {
	auth  x.Authenticator
	users userBucket
}

func (h *bumpHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if _, err := h.bump(ctx, db, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{}, nil
}

func (h *bumpHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	u, err := h.bump(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.users.save(db, u); err != nil {
		return nil, errors.Wrap(err, "cannot save signer")
	}
	return &artmarket.DeliverResult{}, nil
}

// bump returns the signer state with the requested increment applied. The
// Decorator already consumed one nonce of it.
func (h *bumpHandler) bump(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*UserData, error) {
	var msg BumpSequenceMsg
	if err := artmarket.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	u, err := h.users.get(db, signer)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no sequence for %s", signer)
	}
	n := int64(msg.Increment)
	if u.Sequence > maxSequenceValue-n {
		return nil, errors.Wrapf(errors.ErrOverflow, "sequence %d + %d", u.Sequence, n)
	}
	u.Sequence += n - 1
	return u, nil
}
