package cash

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
)

func init() {
	artmarket.RegisterMsg(&SendMsg{}, "cash/SendMsg")
}

const maxMemoSize = 128

// SendMsg moves Amount from the Source wallet to the Destination wallet. It
// must be signed by the Source owner.
type SendMsg struct {
	Source      artmarket.Address
	Destination artmarket.Address
	Amount      uint64
	Memo        string
}

// Ensure we implement the Msg interface
var _ artmarket.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	if s.Amount == 0 {
		err = errors.Append(err, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	err = errors.AppendField(err, "Source", s.Source.Validate())
	err = errors.AppendField(err, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return err
}

func (s *SendMsg) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(s)
}

func (s *SendMsg) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, s)
}
