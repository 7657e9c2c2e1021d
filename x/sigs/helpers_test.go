package sigs

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
)

// signedTx carries a raw payload and any signatures.
type signedTx struct {
	artmarkettest.Tx
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func newSignedTx(payload string) *signedTx {
	msg := &artmarkettest.Msg{RoutePath: "test/sigs", Serialized: []byte(payload)}
	return &signedTx{Tx: artmarkettest.Tx{Msg: msg}}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// signerRecorder remembers the signers the last call was authenticated with.
type signerRecorder struct {
	signers []artmarket.Condition
}

func (r *signerRecorder) Check(ctx artmarket.Context, _ artmarket.KVStore, _ artmarket.Tx) (*artmarket.CheckResult, error) {
	r.signers = Authenticate{}.GetConditions(ctx)
	return &artmarket.CheckResult{}, nil
}

func (r *signerRecorder) Deliver(ctx artmarket.Context, _ artmarket.KVStore, _ artmarket.Tx) (*artmarket.DeliverResult, error) {
	r.signers = Authenticate{}.GetConditions(ctx)
	return &artmarket.DeliverResult{}, nil
}
