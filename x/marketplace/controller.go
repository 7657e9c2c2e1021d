package marketplace

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
	"github.com/iov-one/artmarket/orm"
	"github.com/iov-one/artmarket/x/cash"
	"github.com/iov-one/artmarket/x/collectible"
	"github.com/iov-one/artmarket/x/policy"
	"github.com/iov-one/artmarket/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Registry is the token registry functionality the ledger depends on.
// collectible.Controller implements it.
type Registry interface {
	// Address identifies the registry. It must match the asset registry
	// configured for the ledger.
	Address() artmarket.Address
	OwnerOf(db artmarket.ReadOnlyKVStore, tokenID uint64) (artmarket.Address, error)
	Get(db artmarket.ReadOnlyKVStore, tokenID uint64) (*collectible.Token, error)
	GetByMetadata(db artmarket.ReadOnlyKVStore, metadataRef string) (*collectible.Token, error)
	TransferCustody(db artmarket.KVStore, caller artmarket.Address, tokenID uint64, to artmarket.Address) error
}

var _ Registry = collectible.Controller{}

// Custodian holds custody of every actively listed token. It is a
// condition address, no private key can sign for it.
var Custodian = custody.Address()

var custody = artmarket.NewCondition("market", "custody", []byte("ledger"))

// Controller implements the market ledger. Every mutating operation is all or
// nothing and cannot be entered again while it runs on the same store.
type Controller struct {
	registry Registry
	coins    cash.CoinMover

	items   orm.ModelBucket
	events  orm.ModelBucket
	stats   orm.ModelBucket
	wallets orm.ModelBucket
	itemIDs orm.Sequence
	eventID orm.Sequence

	guard  policy.Guard
	logger log.Logger
}

// NewController returns a ledger working with given registry and moving
// value with coins.
func NewController(registry Registry, coins cash.CoinMover) Controller {
	return Controller{
		registry: registry,
		coins:    coins,
		items:    newItemBucket(),
		events:   newEventBucket(),
		stats:    orm.NewModelBucket(statsBucket, &MarketStats{}),
		wallets:  orm.NewModelBucket(walletsBucket, &WalletStats{}),
		itemIDs:  orm.NewSequence(itemsBucket, orm.SeqID),
		eventID:  orm.NewSequence(eventsBucket, orm.SeqID),
		guard:    policy.NewGuard(configPkg),
		logger:   log.NewNopLogger(),
	}
}

// WithLogger returns a copy of the controller that logs state transitions at
// debug level.
func (c Controller) WithLogger(logger log.Logger) Controller {
	c.logger = logger.With("module", configPkg)
	return c
}

// mutate runs fn atomically while holding the reentrancy guard.
func (c Controller) mutate(db artmarket.KVStore, fn func(db artmarket.KVStore) error) error {
	return utils.Atomic(db, func(db artmarket.KVStore) error {
		return c.guard.Run(db, func() error { return fn(db) })
	})
}

// requireRegistry returns the configuration, failing if the configured asset
// registry is not the one this ledger was built with.
func (c Controller) requireRegistry(db artmarket.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	if len(conf.AssetRegistry) == 0 {
		return nil, errors.Wrap(ErrRegistryNotSet, "not configured")
	}
	if !conf.AssetRegistry.Equals(c.registry.Address()) {
		return nil, errors.Wrapf(ErrRegistryNotSet, "configured %s", conf.AssetRegistry)
	}
	return conf, nil
}

// PutItemForSale lists a token owned by the caller. The paid fee must equal
// the listing fee, it is moved to the marketplace owner. The token is moved
// to the custodian until the item is resolved. The id of the new market item
// is returned.
func (c Controller) PutItemForSale(db artmarket.KVStore, caller artmarket.Address, tokenID uint64, price uint64, paidFee uint64) (uint64, error) {
	var item MarketItem
	err := c.mutate(db, func(db artmarket.KVStore) error {
		conf, err := c.requireRegistry(db)
		if err != nil {
			return err
		}
		owner, err := c.registry.OwnerOf(db, tokenID)
		if err != nil {
			return err
		}
		if !caller.Equals(owner) {
			return errors.Wrapf(ErrNotOwner, "token %d", tokenID)
		}
		if price < 1 {
			return errors.Wrapf(ErrPriceTooLow, "got %d", price)
		}
		if paidFee != conf.ListingFee {
			return errors.Wrapf(ErrWrongFee, "paid %d, expected %d", paidFee, conf.ListingFee)
		}

		token, err := c.registry.Get(db, tokenID)
		if err != nil {
			return err
		}
		if err := c.coins.MoveCoins(db, caller, conf.Owner, paidFee); err != nil {
			return errors.Wrap(err, "listing fee")
		}
		// The ownership was checked above. The custodian takes the token as
		// the registry operator.
		if err := c.registry.TransferCustody(db, Custodian, tokenID, Custodian); err != nil {
			return errors.Wrap(err, "custody")
		}

		id, err := c.itemIDs.NextInt(db)
		if err != nil {
			return errors.Wrap(err, "market item id")
		}
		seq, err := c.appendEvent(db, tokenID, id, Listed)
		if err != nil {
			return err
		}
		item = MarketItem{
			ID:            id,
			TokenID:       tokenID,
			Creator:       token.Creator,
			Seller:        caller,
			Owner:         Custodian,
			Price:         price,
			SequenceIndex: seq,
		}
		if _, err := c.items.Put(db, orm.EncodeSequence(id), &item); err != nil {
			return errors.Wrap(err, "save market item")
		}
		return c.updateStats(db, func(s *MarketStats) error {
			s.Available++
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	c.logger.Debug("market item listed", "item", item.ID, "token", tokenID, "price", price)
	return item.ID, nil
}

// BuyItem buys the active item of the token. The paid price must equal the
// item price, it is moved from the caller to the seller in full.
func (c Controller) BuyItem(db artmarket.KVStore, caller artmarket.Address, tokenID uint64, paidPrice uint64) error {
	var item *MarketItem
	err := c.mutate(db, func(db artmarket.KVStore) error {
		if _, err := c.requireRegistry(db); err != nil {
			return err
		}
		var err error
		item, err = c.ItemForSale(db, tokenID)
		if err != nil {
			return err
		}
		if paidPrice != item.Price {
			return errors.Wrapf(ErrWrongPrice, "paid %d, expected %d", paidPrice, item.Price)
		}
		if err := caller.Validate(); err != nil {
			return errors.Wrap(err, "buyer")
		}

		if err := c.coins.MoveCoins(db, caller, item.Seller, paidPrice); err != nil {
			return errors.Wrap(err, "payment")
		}
		if err := c.registry.TransferCustody(db, Custodian, tokenID, caller); err != nil {
			return errors.Wrap(err, "custody")
		}

		item.Sold = true
		item.Owner = caller
		if _, err := c.items.Put(db, orm.EncodeSequence(item.ID), item); err != nil {
			return errors.Wrap(err, "save market item")
		}
		if _, err := c.appendEvent(db, tokenID, item.ID, Sold); err != nil {
			return err
		}
		err = c.updateStats(db, func(s *MarketStats) error {
			if s.Available == 0 {
				return errors.Wrap(errors.ErrHuman, "no available item to sell")
			}
			s.Available--
			s.Sold++
			return nil
		})
		if err != nil {
			return err
		}
		if err := c.updateWallet(db, item.Seller, func(w *WalletStats) { w.Sold++ }); err != nil {
			return err
		}
		return c.updateWallet(db, caller, func(w *WalletStats) { w.Bought++ })
	})
	if err != nil {
		return err
	}
	c.logger.Debug("market item sold", "item", item.ID, "token", tokenID, "buyer", caller)
	return nil
}

// WithdrawFromSale cancels the active item of the token and returns the
// token to the seller. Only the seller can withdraw an item.
func (c Controller) WithdrawFromSale(db artmarket.KVStore, caller artmarket.Address, tokenID uint64) error {
	var item *MarketItem
	err := c.mutate(db, func(db artmarket.KVStore) error {
		if _, err := c.requireRegistry(db); err != nil {
			return err
		}
		var err error
		item, err = c.ItemForSale(db, tokenID)
		if err != nil {
			return err
		}
		if !caller.Equals(item.Seller) {
			return errors.Wrapf(ErrNotSeller, "item %d", item.ID)
		}

		if err := c.registry.TransferCustody(db, Custodian, tokenID, item.Seller); err != nil {
			return errors.Wrap(err, "custody")
		}

		item.Canceled = true
		item.Owner = item.Seller
		if _, err := c.items.Put(db, orm.EncodeSequence(item.ID), item); err != nil {
			return errors.Wrap(err, "save market item")
		}
		if _, err := c.appendEvent(db, tokenID, item.ID, Canceled); err != nil {
			return err
		}
		err = c.updateStats(db, func(s *MarketStats) error {
			if s.Available == 0 {
				return errors.Wrap(errors.ErrHuman, "no available item to cancel")
			}
			s.Available--
			s.Canceled++
			return nil
		})
		if err != nil {
			return err
		}
		return c.updateWallet(db, item.Seller, func(w *WalletStats) { w.Withdrawn++ })
	})
	if err != nil {
		return err
	}
	c.logger.Debug("market item withdrawn", "item", item.ID, "token", tokenID)
	return nil
}

func (c Controller) appendEvent(db artmarket.KVStore, tokenID, itemID uint64, kind EventKind) (uint64, error) {
	seq, err := c.eventID.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "event sequence")
	}
	event := MarketEvent{
		Sequence:     seq,
		TokenID:      tokenID,
		MarketItemID: itemID,
		Kind:         kind,
	}
	if _, err := c.events.Put(db, orm.EncodeSequence(seq), &event); err != nil {
		return 0, errors.Wrap(err, "save event")
	}
	return seq, nil
}

func (c Controller) updateStats(db artmarket.KVStore, fn func(*MarketStats) error) error {
	s, err := c.MarketStatistics(db)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	_, err = c.stats.Put(db, statsKey, s)
	return err
}

func (c Controller) updateWallet(db artmarket.KVStore, who artmarket.Address, fn func(*WalletStats)) error {
	w, err := c.WalletStatistics(db, who)
	if err != nil {
		return err
	}
	fn(w)
	_, err = c.wallets.Put(db, who, w)
	return err
}

// SetAssetRegistry configures the registry the ledger works with. Only the
// configuration owner can change it.
func (c Controller) SetAssetRegistry(db artmarket.KVStore, caller artmarket.Address, registry artmarket.Address) error {
	if err := registry.Validate(); err != nil {
		return errors.Wrap(err, "registry")
	}
	return c.updateConfig(db, caller, func(conf *Configuration) {
		conf.AssetRegistry = registry
	})
}

// AssetRegistry returns the configured registry address, if any.
func (c Controller) AssetRegistry(db artmarket.ReadOnlyKVStore) (artmarket.Address, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return nil, err
	}
	return conf.AssetRegistry, nil
}

// SetListingFee changes the listing fee. Only the configuration owner can
// change it.
func (c Controller) SetListingFee(db artmarket.KVStore, caller artmarket.Address, fee uint64) error {
	return c.updateConfig(db, caller, func(conf *Configuration) {
		conf.ListingFee = fee
	})
}

// ListingFee returns the amount a seller must pay to list an item.
func (c Controller) ListingFee(db artmarket.ReadOnlyKVStore) (uint64, error) {
	conf, err := loadConfig(db)
	if err != nil {
		return 0, err
	}
	return conf.ListingFee, nil
}

func (c Controller) updateConfig(db artmarket.KVStore, caller artmarket.Address, fn func(*Configuration)) error {
	return c.mutate(db, func(db artmarket.KVStore) error {
		conf, err := loadConfig(db)
		if err != nil {
			return err
		}
		if err := policy.IsOwner(caller, conf.Owner); err != nil {
			return err
		}
		fn(conf)
		return gconf.Save(db, configPkg, conf)
	})
}
