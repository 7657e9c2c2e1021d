package marketplace

import (
	"encoding/binary"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/orm"
)

// AvailableItems returns all active items in listing order.
func (c Controller) AvailableItems(db artmarket.ReadOnlyKVStore) ([]MarketItem, error) {
	return c.itemsBy(db, "active", activeKey)
}

// SellingItems returns the active items listed by who.
func (c Controller) SellingItems(db artmarket.ReadOnlyKVStore, who artmarket.Address) ([]MarketItem, error) {
	return c.itemsBy(db, "seller_active", who)
}

// OwnedItems returns all items, of any status, whose owner is who.
func (c Controller) OwnedItems(db artmarket.ReadOnlyKVStore, who artmarket.Address) ([]MarketItem, error) {
	return c.itemsBy(db, "owner", who)
}

// CreatedItems returns all items of tokens created by who.
func (c Controller) CreatedItems(db artmarket.ReadOnlyKVStore, who artmarket.Address) ([]MarketItem, error) {
	return c.itemsBy(db, "creator", who)
}

// ItemForSale returns the active item of the token. It fails with
// ErrItemNotListed if the token is not listed.
func (c Controller) ItemForSale(db artmarket.ReadOnlyKVStore, tokenID uint64) (*MarketItem, error) {
	items, err := c.itemsBy(db, "token_active", orm.EncodeSequence(tokenID))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.Wrapf(ErrItemNotListed, "token %d", tokenID)
	}
	return &items[0], nil
}

// ItemForSaleByMetadata returns the active item of the token minted with
// given metadata reference.
func (c Controller) ItemForSaleByMetadata(db artmarket.ReadOnlyKVStore, metadataRef string) (*MarketItem, error) {
	token, err := c.registry.GetByMetadata(db, metadataRef)
	if err != nil {
		return nil, err
	}
	return c.ItemForSale(db, token.ID)
}

// MarketHistory returns every item ever listed, in listing order.
func (c Controller) MarketHistory(db artmarket.ReadOnlyKVStore) ([]MarketItem, error) {
	var items []MarketItem
	if _, err := c.items.Scan(db, orm.ScanQuery{}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// LastMarketHistoryItems returns up to n most recently listed items, most
// recent first.
func (c Controller) LastMarketHistoryItems(db artmarket.ReadOnlyKVStore, n int) ([]MarketItem, error) {
	if n < 0 {
		return nil, errors.Wrapf(errors.ErrInput, "count %d", n)
	}
	items := []MarketItem{}
	if n == 0 {
		return items, nil
	}
	if _, err := c.items.Scan(db, orm.ScanQuery{Reverse: true, Limit: n}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// TokenMarketHistory returns all items of the token in listing order.
func (c Controller) TokenMarketHistory(db artmarket.ReadOnlyKVStore, tokenID uint64) ([]MarketItem, error) {
	return c.itemsBy(db, "token", orm.EncodeSequence(tokenID))
}

// PaginatedTokenMarketHistory returns up to n most recent items of the token,
// most recent first.
func (c Controller) PaginatedTokenMarketHistory(db artmarket.ReadOnlyKVStore, tokenID uint64, n int) ([]MarketItem, error) {
	if n < 0 {
		return nil, errors.Wrapf(errors.ErrInput, "count %d", n)
	}
	items, err := c.TokenMarketHistory(db, tokenID)
	if err != nil {
		return nil, err
	}
	res := []MarketItem{}
	for i := len(items) - 1; i >= 0 && len(res) < n; i-- {
		res = append(res, items[i])
	}
	return res, nil
}

// TokenEvents returns the market log of the token, oldest first.
func (c Controller) TokenEvents(db artmarket.ReadOnlyKVStore, tokenID uint64) ([]MarketEvent, error) {
	var events []MarketEvent
	if _, err := c.events.ByIndex(db, "token", orm.EncodeSequence(tokenID), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountTokenTransactions returns the number of market events of the token.
func (c Controller) CountTokenTransactions(db artmarket.ReadOnlyKVStore, tokenID uint64) (uint64, error) {
	events, err := c.TokenEvents(db, tokenID)
	if err != nil {
		return 0, err
	}
	return uint64(len(events)), nil
}

// MarketStatistics returns the global counters.
func (c Controller) MarketStatistics(db artmarket.ReadOnlyKVStore) (*MarketStats, error) {
	var s MarketStats
	switch err := c.stats.One(db, statsKey, &s); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &s, nil
	default:
		return nil, err
	}
}

func (c Controller) CountAvailable(db artmarket.ReadOnlyKVStore) (uint64, error) {
	s, err := c.MarketStatistics(db)
	if err != nil {
		return 0, err
	}
	return s.Available, nil
}

func (c Controller) CountSold(db artmarket.ReadOnlyKVStore) (uint64, error) {
	s, err := c.MarketStatistics(db)
	if err != nil {
		return 0, err
	}
	return s.Sold, nil
}

func (c Controller) CountCanceled(db artmarket.ReadOnlyKVStore) (uint64, error) {
	s, err := c.MarketStatistics(db)
	if err != nil {
		return 0, err
	}
	return s.Canceled, nil
}

// WalletStatistics returns the counters of who. An address that never traded
// has all counters at zero.
func (c Controller) WalletStatistics(db artmarket.ReadOnlyKVStore, who artmarket.Address) (*WalletStats, error) {
	if err := who.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var w WalletStats
	switch err := c.wallets.One(db, who, &w); {
	case err == nil, errors.ErrNotFound.Is(err):
		return &w, nil
	default:
		return nil, err
	}
}

func (c Controller) CountSoldByAddress(db artmarket.ReadOnlyKVStore, who artmarket.Address) (uint64, error) {
	w, err := c.WalletStatistics(db, who)
	if err != nil {
		return 0, err
	}
	return w.Sold, nil
}

func (c Controller) CountBoughtByAddress(db artmarket.ReadOnlyKVStore, who artmarket.Address) (uint64, error) {
	w, err := c.WalletStatistics(db, who)
	if err != nil {
		return 0, err
	}
	return w.Bought, nil
}

func (c Controller) CountWithdrawnByAddress(db artmarket.ReadOnlyKVStore, who artmarket.Address) (uint64, error) {
	w, err := c.WalletStatistics(db, who)
	if err != nil {
		return 0, err
	}
	return w.Withdrawn, nil
}

func (c Controller) itemsBy(db artmarket.ReadOnlyKVStore, index string, key []byte) ([]MarketItem, error) {
	items := []MarketItem{}
	if _, err := c.items.ByIndex(db, index, key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RegisterQuery registers the ledger buckets and read operations under
// "/market". Bucket content is available under "/market/items",
// "/market/events", "/market/stats" and "/market/wallets" together with their
// indexes. Read operations expect an 8 byte big endian token id or count, or
// an address, as the query data:
//
//	/market/available             all active items
//	/market/selling               address, active items of the seller
//	/market/for_sale              token id, the active item of the token
//	/market/history               every item
//	/market/last                  count, most recent items first
//	/market/token_history         token id, optionally followed by a count
//	/market/statistics            global counters
//	/market/wallet_statistics     address, counters of the address
func (c Controller) RegisterQuery(qr artmarket.QueryRouter) {
	c.items.Register("market/items", qr)
	c.events.Register("market/events", qr)
	c.stats.Register("market/stats", qr)
	c.wallets.Register("market/wallets", qr)

	qr.Register("/market/available", c.itemsQuery(func(db artmarket.ReadOnlyKVStore, _ []byte) ([]MarketItem, error) {
		return c.AvailableItems(db)
	}))
	qr.Register("/market/selling", c.itemsQuery(func(db artmarket.ReadOnlyKVStore, data []byte) ([]MarketItem, error) {
		return c.SellingItems(db, data)
	}))
	qr.Register("/market/for_sale", c.itemsQuery(func(db artmarket.ReadOnlyKVStore, data []byte) ([]MarketItem, error) {
		id, err := decodeUint(data)
		if err != nil {
			return nil, err
		}
		switch item, err := c.ItemForSale(db, id); {
		case err == nil:
			return []MarketItem{*item}, nil
		case ErrItemNotListed.Is(err):
			return nil, nil
		default:
			return nil, err
		}
	}))
	qr.Register("/market/history", c.itemsQuery(func(db artmarket.ReadOnlyKVStore, _ []byte) ([]MarketItem, error) {
		return c.MarketHistory(db)
	}))
	qr.Register("/market/last", c.itemsQuery(func(db artmarket.ReadOnlyKVStore, data []byte) ([]MarketItem, error) {
		n, err := decodeUint(data)
		if err != nil {
			return nil, err
		}
		return c.LastMarketHistoryItems(db, int(n))
	}))
	qr.Register("/market/token_history", c.itemsQuery(func(db artmarket.ReadOnlyKVStore, data []byte) ([]MarketItem, error) {
		if len(data) == 16 {
			return c.PaginatedTokenMarketHistory(db, binary.BigEndian.Uint64(data[:8]), int(binary.BigEndian.Uint64(data[8:])))
		}
		id, err := decodeUint(data)
		if err != nil {
			return nil, err
		}
		return c.TokenMarketHistory(db, id)
	}))
	qr.Register("/market/statistics", artmarket.QueryHandlerFunc(func(db artmarket.ReadOnlyKVStore, _ string, _ []byte) ([]artmarket.Model, error) {
		s, err := c.MarketStatistics(db)
		if err != nil {
			return nil, err
		}
		return modelResult(statsKey, s)
	}))
	qr.Register("/market/wallet_statistics", artmarket.QueryHandlerFunc(func(db artmarket.ReadOnlyKVStore, _ string, data []byte) ([]artmarket.Model, error) {
		w, err := c.WalletStatistics(db, data)
		if err != nil {
			return nil, err
		}
		return modelResult(data, w)
	}))
}

func (c Controller) itemsQuery(fn func(artmarket.ReadOnlyKVStore, []byte) ([]MarketItem, error)) artmarket.QueryHandler {
	return artmarket.QueryHandlerFunc(func(db artmarket.ReadOnlyKVStore, mod string, data []byte) ([]artmarket.Model, error) {
		if mod != artmarket.KeyQueryMod {
			return nil, errors.Wrapf(errors.ErrInput, "unsupported mod %q", mod)
		}
		items, err := fn(db, data)
		if err != nil {
			return nil, err
		}
		res := make([]artmarket.Model, 0, len(items))
		for i := range items {
			raw, err := items[i].Marshal()
			if err != nil {
				return nil, err
			}
			res = append(res, artmarket.Pair(orm.EncodeSequence(items[i].ID), raw))
		}
		return res, nil
	})
}

func modelResult(key []byte, m artmarket.Persistent) ([]artmarket.Model, error) {
	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	return []artmarket.Model{artmarket.Pair(key, raw)}, nil
}

func decodeUint(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "expected 8 bytes, got %d", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}
