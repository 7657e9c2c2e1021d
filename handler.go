package artmarket

import (
	"encoding/json"

	"github.com/iov-one/artmarket/errors"
)

// Handler executes one kind of message, for example "collectible/mint".
type Handler interface {
	Checker
	Deliverer
}

// Checker runs the cheap validation of CheckTx.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer applies a transaction during DeliverTx.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around every handler, for signature checks or logging. It
// decides whether and how next is called.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to messages. The route is taken from msg.Path.
type Registry interface {
	Handle(msg Msg, h Handler)
}

// Initializer loads an extension's state from the genesis file.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// Options hold the app_state of the genesis file, one raw json document per
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section key into obj. A missing section leaves obj
// untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Stream reads the section key as a json list, one element per call. It
// returns errors.ErrEmpty once the list is consumed or if the section is
// missing.
func (o Options) Stream(key string) func(obj interface{}) error {
	raw := o[key]
	if len(raw) == 0 {
		return func(interface{}) error { return errors.ErrEmpty }
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		err = errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
		return func(interface{}) error { return err }
	}
	return func(obj interface{}) error {
		if len(items) == 0 {
			return errors.ErrEmpty
		}
		item := items[0]
		items = items[1:]
		if err := json.Unmarshal(item, obj); err != nil {
			return errors.Wrapf(errors.ErrInput, "cannot parse %q element: %s", key, err)
		}
		return nil
	}
}
