package artmarketd

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/x/sigs"
)

// Tx is the transaction format accepted by the daemon. It carries exactly one
// message together with the signatures authorizing it.
type Tx struct {
	Msg        artmarket.Msg
	Signatures []*sigs.StdSignature
}

// make sure tx fulfills all interfaces
var _ artmarket.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction for given message.
func NewTx(msg artmarket.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (artmarket.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (artmarket.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	return artmarket.UnmarshalModel(raw, tx)
}
