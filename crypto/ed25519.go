package crypto

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is an ed25519 public key as carried in a transaction signature.
type PublicKey struct {
	Ed25519 []byte
}

// PrivateKey is an ed25519 private key. It is never part of the application
// state and is only used by clients to sign transactions.
type PrivateKey struct {
	Ed25519 []byte
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	if sig == nil || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into an artmarket condition. An empty key
// produces no condition.
func (p *PublicKey) Condition() artmarket.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return artmarket.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address derived from the key condition.
func (p *PublicKey) Address() artmarket.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}

// Validate ensures the public key has the expected size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, p)
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return &PublicKey{}
	}
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(p)
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, p)
}

func (s *Signature) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(s)
}

func (s *Signature) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, s)
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
