package cash

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. This operation is atomic.
	MoveCoins(db artmarket.KVStore, src, dest artmarket.Address, amount uint64) error
}

// Controller is the functionality needed by cash.Handler and cash.Initializer.
// Extensions can embed the controller to track value movement.
type Controller interface {
	CoinMover

	// Balance returns the amount owned by the given address.
	Balance(db artmarket.ReadOnlyKVStore, owner artmarket.Address) (uint64, error)

	// IssueCoins adds the given amount to the destination wallet. Fails if
	// it overflows the wallet.
	IssueCoins(db artmarket.KVStore, dest artmarket.Address, amount uint64) error
}

// BaseController is a simple implementation of a Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db artmarket.ReadOnlyKVStore, owner artmarket.Address) (uint64, error) {
	if err := owner.Validate(); err != nil {
		return 0, errors.Wrap(err, "owner")
	}
	w, err := c.wallet(db, owner)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest. If src doesn't have
// sufficient funds, it fails. Moving zero is a no-op.
func (c BaseController) MoveCoins(db artmarket.KVStore, src, dest artmarket.Address, amount uint64) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if amount == 0 {
		return nil
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %d, needs %d", src, sender.Balance, amount)
	}
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}

	sender.Balance -= amount
	recipient.Balance += amount
	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) IssueCoins(db artmarket.KVStore, dest artmarket.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Balance+amount < w.Balance {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.Balance += amount
	if _, err := c.bucket.Put(db, dest, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}

// wallet returns the wallet stored under given address or an empty one.
func (c BaseController) wallet(db artmarket.ReadOnlyKVStore, addr artmarket.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
