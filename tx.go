package artmarket

import (
	"reflect"

	"github.com/iov-one/artmarket/errors"
)

// Marshaller serializes a value into its binary form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent values can be written to and read back from the store. Unmarshal
// almost always needs a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for a state transition, for example minting a token. The
// signatures authorizing it are carried by the enclosing Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It contains only
	// [a-zA-Z0-9_/] characters, for example "market/buy".
	Path() string

	// Validate checks the message content without reading the store.
	Validate() error
}

// Tx is what a client submits: a message together with whatever the
// decorators need, like signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder reads a Tx from the bytes tendermint delivers.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the message path of tx, or "(missing)" if the message
// cannot be read.
func GetPath(tx Tx) string {
	if tx != nil {
		if msg, err := tx.GetMsg(); err == nil && msg != nil {
			return msg.Path()
		}
	}
	return "(missing)"
}

// LoadMsg copies the validated message of tx into dest, which must point to a
// value of the message's type.
//
//	var msg SellMsg
//	if err := artmarket.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	src := reflect.ValueOf(msg)
	if msg == nil || (src.Kind() == reflect.Ptr && src.IsNil()) {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	dst := reflect.ValueOf(dest)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src = reflect.Indirect(src)
	if want := dst.Elem().Type(); src.Type() != want {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", want, msg)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	dst.Elem().Set(src)
	return nil
}
