package cash

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/orm"
)

// BucketName is where we store the balances
const BucketName = "wallets"

// Wallet holds the balance of a single address. The address is the key the
// wallet is stored under.
type Wallet struct {
	Balance uint64
}

var _ orm.Model = (*Wallet)(nil)

// Validate is always successful. A zero balance is a valid wallet.
func (w *Wallet) Validate() error {
	return nil
}

func (w *Wallet) Copy() orm.Model {
	return &Wallet{Balance: w.Balance}
}

func (w *Wallet) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, w)
}

// NewBucket returns a bucket storing wallets keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
