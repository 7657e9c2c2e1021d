package artmarkettest

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() artmarket.Condition {
	return NewKey().PublicKey().Condition()
}
