package marketplace

import (
	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/orm"
)

const (
	itemsBucket   = "mitems"
	eventsBucket  = "mevents"
	statsBucket   = "mstats"
	walletsBucket = "wstats"
)

// MarketItem is a single listing of a token. It is active until it is
// either sold or canceled, after which it is kept unchanged as history.
type MarketItem struct {
	ID      uint64
	TokenID uint64
	// Creator is the creator of the token.
	Creator artmarket.Address
	Seller  artmarket.Address
	// Owner is the custodian while the item is active, the buyer once
	// sold and the seller once canceled.
	Owner    artmarket.Address
	Price    uint64
	Sold     bool
	Canceled bool
	// SequenceIndex is the sequence number of the Listed event of this item.
	SequenceIndex uint64
}

var _ orm.Model = (*MarketItem)(nil)

// Active returns true until the item is sold or canceled.
func (m *MarketItem) Active() bool {
	return !m.Sold && !m.Canceled
}

func (m *MarketItem) Validate() error {
	var errs error
	if m.ID == 0 {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrEmpty, "required"))
	}
	if m.TokenID == 0 {
		errs = errors.Append(errs, errors.Field("TokenID", errors.ErrEmpty, "required"))
	}
	errs = errors.AppendField(errs, "Creator", m.Creator.Validate())
	errs = errors.AppendField(errs, "Seller", m.Seller.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Price < 1 {
		errs = errors.Append(errs, errors.Field("Price", ErrPriceTooLow, "got %d", m.Price))
	}
	if m.Sold && m.Canceled {
		errs = errors.Append(errs, errors.Field("Canceled", errors.ErrState, "sold item cannot be canceled"))
	}
	if m.SequenceIndex == 0 {
		errs = errors.Append(errs, errors.Field("SequenceIndex", errors.ErrEmpty, "required"))
	}
	return errs
}

func (m *MarketItem) Copy() orm.Model {
	return &MarketItem{
		ID:            m.ID,
		TokenID:       m.TokenID,
		Creator:       m.Creator.Clone(),
		Seller:        m.Seller.Clone(),
		Owner:         m.Owner.Clone(),
		Price:         m.Price,
		Sold:          m.Sold,
		Canceled:      m.Canceled,
		SequenceIndex: m.SequenceIndex,
	}
}

func (m *MarketItem) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(m)
}

func (m *MarketItem) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, m)
}

// activeKey is the only key of the "active" index.
var activeKey = []byte{1}

// newItemBucket returns the market items bucket. Items are stored under their
// encoded id. Indexes with the _active suffix, and the active index itself,
// reference active items only.
func newItemBucket() orm.ModelBucket {
	return orm.NewModelBucket(itemsBucket, &MarketItem{},
		orm.WithIndex("token", itemIndexer(false, func(m *MarketItem) []byte { return orm.EncodeSequence(m.TokenID) }), false),
		orm.WithIndex("token_active", itemIndexer(true, func(m *MarketItem) []byte { return orm.EncodeSequence(m.TokenID) }), true),
		orm.WithIndex("seller_active", itemIndexer(true, func(m *MarketItem) []byte { return m.Seller }), false),
		orm.WithIndex("owner", itemIndexer(false, func(m *MarketItem) []byte { return m.Owner }), false),
		orm.WithIndex("creator", itemIndexer(false, func(m *MarketItem) []byte { return m.Creator }), false),
		orm.WithIndex("active", itemIndexer(true, func(*MarketItem) []byte { return activeKey }), false),
	)
}

func itemIndexer(activeOnly bool, key func(*MarketItem) []byte) orm.Indexer {
	return func(m orm.Model) ([]byte, error) {
		item, ok := m.(*MarketItem)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "%T", m)
		}
		if activeOnly && !item.Active() {
			return nil, nil
		}
		return key(item), nil
	}
}

// EventKind is the kind of a market event.
type EventKind uint32

const (
	Listed EventKind = iota + 1
	Sold
	Canceled
)

func (k EventKind) String() string {
	switch k {
	case Listed:
		return "listed"
	case Sold:
		return "sold"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// MarketEvent is an entry of the append only market log.
type MarketEvent struct {
	Sequence     uint64
	TokenID      uint64
	MarketItemID uint64
	Kind         EventKind
}

var _ orm.Model = (*MarketEvent)(nil)

func (e *MarketEvent) Validate() error {
	var errs error
	if e.Sequence == 0 {
		errs = errors.Append(errs, errors.Field("Sequence", errors.ErrEmpty, "required"))
	}
	if e.TokenID == 0 {
		errs = errors.Append(errs, errors.Field("TokenID", errors.ErrEmpty, "required"))
	}
	if e.MarketItemID == 0 {
		errs = errors.Append(errs, errors.Field("MarketItemID", errors.ErrEmpty, "required"))
	}
	switch e.Kind {
	case Listed, Sold, Canceled:
	default:
		errs = errors.Append(errs, errors.Field("Kind", errors.ErrInput, "unknown kind %d", e.Kind))
	}
	return errs
}

func (e *MarketEvent) Copy() orm.Model {
	cpy := *e
	return &cpy
}

func (e *MarketEvent) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(e)
}

func (e *MarketEvent) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, e)
}

func newEventBucket() orm.ModelBucket {
	return orm.NewModelBucket(eventsBucket, &MarketEvent{},
		orm.WithIndex("token", func(m orm.Model) ([]byte, error) {
			e, ok := m.(*MarketEvent)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", m)
			}
			return orm.EncodeSequence(e.TokenID), nil
		}, false),
	)
}

// MarketStats are the global market counters.
type MarketStats struct {
	Available uint64
	Sold      uint64
	Canceled  uint64
}

var _ orm.Model = (*MarketStats)(nil)

func (s *MarketStats) Validate() error {
	return nil
}

func (s *MarketStats) Copy() orm.Model {
	cpy := *s
	return &cpy
}

func (s *MarketStats) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(s)
}

func (s *MarketStats) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, s)
}

// statsKey is the key of the only MarketStats entry.
var statsKey = []byte("market")

// WalletStats are the market counters of a single address.
type WalletStats struct {
	Sold      uint64
	Bought    uint64
	Withdrawn uint64
}

var _ orm.Model = (*WalletStats)(nil)

func (s *WalletStats) Validate() error {
	return nil
}

func (s *WalletStats) Copy() orm.Model {
	cpy := *s
	return &cpy
}

func (s *WalletStats) Marshal() ([]byte, error) {
	return artmarket.MarshalModel(s)
}

func (s *WalletStats) Unmarshal(raw []byte) error {
	return artmarket.UnmarshalModel(raw, s)
}
