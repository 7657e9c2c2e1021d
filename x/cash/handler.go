package cash

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/x"
)

// gasPerSend is allocated at check time for a SendMsg.
const gasPerSend = 100

// RegisterRoutes adds the transfer handler.
func RegisterRoutes(r artmarket.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery exposes the wallets at /wallets.
func RegisterQuery(qr artmarket.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves coins on behalf of the source account, which has to sign.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ artmarket.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

func (h SendHandler) Check(ctx artmarket.Context, _ artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if _, err := h.load(ctx, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: gasPerSend}, nil
}

func (h SendHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	msg, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "send")
	}
	return &artmarket.DeliverResult{}, nil
}

func (h SendHandler) load(ctx artmarket.Context, tx artmarket.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := artmarket.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, err
	}
	return &msg, nil
}
