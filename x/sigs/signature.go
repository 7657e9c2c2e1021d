package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/crypto"
	"github.com/iov-one/artmarket/errors"
)

// SignCodeV1 starts the signed bytes of the current signing scheme.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// SignedTx is a transaction carrying signatures.
type SignedTx interface {
	// GetSignBytes returns the serialized transaction without its
	// signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature is a signature together with the key and nonce it was made
// with.
type StdSignature struct {
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
	Sequence  int64
}

func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "no public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "no signature")
	}
	if err := s.Pubkey.Validate(); err != nil {
		return errors.Wrapf(errors.ErrUnauthorized, "public key: %s", err)
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(s)
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, s)
}

// SignBytes returns the digest signed for a transaction. It is the sha512 of
//
//	SignCodeV1 | len(chainID) | chainID | seq | tx
//
// with the length as a single byte and seq as 8 big endian bytes.
func SignBytes(tx []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !artmarket.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(tx)
	return h.Sum(nil), nil
}

// SignTx signs tx with the nonce seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := SignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// verifyTx checks every signature of tx and consumes its nonce. Signers are
// returned in signature order.
func verifyTx(db artmarket.KVStore, users userBucket, tx SignedTx, chainID string) ([]artmarket.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]artmarket.Condition, 0, len(sigs))
	for i, sig := range sigs {
		if err := verify(db, users, sig, raw, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, sig.Pubkey.Condition())
	}
	return signers, nil
}

func verify(db artmarket.KVStore, users userBucket, sig *StdSignature, tx []byte, chainID string) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	digest, err := SignBytes(tx, chainID, sig.Sequence)
	if err != nil {
		return err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return ErrInvalidSignature
	}
	u, err := users.getOrNew(db, sig.Pubkey)
	if err != nil {
		return err
	}
	if err := u.use(sig.Sequence); err != nil {
		return err
	}
	return users.save(db, u)
}
