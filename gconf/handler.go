package gconf

import (
	"reflect"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/x"
)

// OwnedConfig is a configuration only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() artmarket.Address
}

// UpdateConfigurationHandler patches the configuration of a package. Its
// message must hold a Patch field of the configuration type, and the current
// owner must sign it. A configuration missing from genesis cannot be updated.
type UpdateConfigurationHandler struct {
	pkg    string
	config OwnedConfig
	auth   x.Authenticator
}

var _ artmarket.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler loading the configuration
// of pkg into config, which also fixes the configuration type.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{pkg: pkg, config: config, auth: auth}
}

func (h UpdateConfigurationHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) error {
	if err := Load(db, h.pkg, h.config); err != nil {
		return err
	}
	if err := x.RequireSigner(ctx, h.auth, h.config.GetOwner(), h.pkg+" owner"); err != nil {
		return err
	}
	patch, err := patchOf(tx)
	if err != nil {
		return err
	}
	if err := Patch(h.config, patch); err != nil {
		return err
	}
	return Save(db, h.pkg, h.config)
}

// Patch copies every non zero field of patch into config. Both must point to
// the same struct type.
func Patch(config, patch interface{}) error {
	tp := reflect.TypeOf(config)
	if tp != reflect.TypeOf(patch) || tp.Kind() != reflect.Ptr || tp.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrType, "cannot patch %T with %T", config, patch)
	}
	dst := reflect.ValueOf(config).Elem()
	src := reflect.ValueOf(patch).Elem()
	for i := 0; i < src.NumField(); i++ {
		if f := src.Field(i); !isZero(f) {
			dst.Field(i).Set(f)
		}
	}
	return nil
}

func isZero(v reflect.Value) bool {
	return reflect.DeepEqual(v.Interface(), reflect.Zero(v.Type()).Interface())
}

// patchOf returns the Patch field of the validated message of tx.
func patchOf(tx artmarket.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "%T is not a struct pointer", msg)
	}
	f := v.Elem().FieldByName("Patch")
	switch {
	case !f.IsValid() || f.Kind() != reflect.Ptr:
		return nil, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	case f.IsNil():
		return nil, errors.Wrap(errors.ErrEmpty, "no patch")
	}
	patch, ok := f.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "cannot patch with %s", f.Type())
	}
	return patch, nil
}
