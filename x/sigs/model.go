package sigs

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/crypto"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/orm"
)

// BucketName is the prefix of all signer states.
const BucketName = "sigs"

// Clients keep nonces in a javascript number, so a sequence must stay
// within the integer range of a float64.
const maxSequenceValue = 1<<53 - 1

// UserData is the replay protection state of a public key. Sequence is the
// nonce the next signature made with Pubkey must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	switch {
	case u.Sequence < 0 || u.Sequence > maxSequenceValue:
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	case u.Sequence > 0 && u.Pubkey == nil:
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "no public key"))
	}
	if u.Pubkey != nil {
		errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	}
	return errs
}

func (u *UserData) Copy() orm.Model {
	cpy := *u
	return &cpy
}

func (u *UserData) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, u)
}

// use consumes the nonce seq. It fails unless seq is the expected one.
func (u *UserData) use(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, seq)
	}
	return u.skip(1)
}

// skip moves the sequence n nonces ahead.
func (u *UserData) skip(n int64) error {
	if n < 0 || u.Sequence > maxSequenceValue-n {
		return errors.Wrapf(errors.ErrOverflow, "sequence %d + %d", u.Sequence, n)
	}
	u.Sequence += n
	return nil
}

// userBucket stores UserData under the address of its public key.
type userBucket struct {
	orm.ModelBucket
}

func newUserBucket() userBucket {
	return userBucket{orm.NewModelBucket(BucketName, &UserData{})}
}

// get returns nil for an address that never signed.
func (b userBucket) get(db artmarket.ReadOnlyKVStore, addr artmarket.Address) (*UserData, error) {
	var u UserData
	switch err := b.One(db, addr, &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot load signer")
	}
}

// getOrNew returns the state of pubkey, starting at sequence zero for a key
// that never signed.
func (b userBucket) getOrNew(db artmarket.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := b.get(db, pubkey.Address())
	if err != nil || u != nil {
		return u, err
	}
	return &UserData{Pubkey: pubkey}, nil
}

func (b userBucket) save(db artmarket.KVStore, u *UserData) error {
	_, err := b.Put(db, u.Pubkey.Address(), u)
	return err
}

// NextNonce returns the sequence the next signature of signer must carry.
// The address of a crypto.Signer is
//
//	signer.PublicKey().Address()
func NextNonce(db artmarket.ReadOnlyKVStore, signer artmarket.Address) (int64, error) {
	u, err := newUserBucket().get(db, signer)
	if err != nil || u == nil {
		return 0, err
	}
	return u.Sequence, nil
}
