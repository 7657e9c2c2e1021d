package artmarket

import (
	"reflect"

	"github.com/iov-one/artmarket/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc is the binary codec shared by all persisted models and messages.
// Message types must be registered with RegisterMsg before any transaction
// carrying them is serialized.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*Msg)(nil), nil)
}

// RegisterMsg makes given message type available for serialization behind
// the Msg interface. Name must be unique within the application and is part
// of the wire format.
//
// Use this function only during a program startup phase.
func RegisterMsg(msg Msg, name string) {
	cdc.RegisterConcrete(msg, name, nil)
}

// MarshalModel serializes given object using the binary codec. Output is
// length prefixed so that a zero value object is never represented by an
// empty value.
func MarshalModel(obj interface{}) ([]byte, error) {
	raw, err := cdc.MarshalBinaryLengthPrefixed(obj)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", obj, err)
	}
	return raw, nil
}

// UnmarshalModel deserializes raw data into given object. Destination must
// be a pointer. The destination is reset before decoding, so fields missing
// in raw end up with their zero value.
func UnmarshalModel(raw []byte, obj interface{}) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "cannot unmarshal into %T", obj)
	}
	v.Elem().Set(reflect.Zero(v.Elem().Type()))
	if len(raw) == 0 || (len(raw) == 1 && raw[0] == 0) {
		return nil
	}
	if err := cdc.UnmarshalBinaryLengthPrefixed(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", obj, err)
	}
	return nil
}
