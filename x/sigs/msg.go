package sigs

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

// A single bump cannot skip more nonces than this.
const maxSequenceIncrement = 1000

func init() {
	artmarket.RegisterMsg(&BumpSequenceMsg{}, "sigs/BumpSequenceMsg")
}

// BumpSequenceMsg moves the sequence of the main signer Increment nonces
// ahead, counting the one consumed by the transaction itself.
type BumpSequenceMsg struct {
	Increment uint32
}

var _ artmarket.Msg = (*BumpSequenceMsg)(nil)

func (*BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (m *BumpSequenceMsg) Validate() error {
	if m.Increment == 0 || m.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment %d not in [1, %d]", m.Increment, maxSequenceIncrement)
	}
	return nil
}

func (m *BumpSequenceMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}
