package marketplace

import (
	"strconv"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
	"github.com/iov-one/artmarket/orm"
	"github.com/iov-one/artmarket/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	sellCost     int64 = 200
	buyCost      int64 = 200
	withdrawCost int64 = 100

	TagListed   = "market/listed"
	TagSold     = "market/sold"
	TagCanceled = "market/canceled"
	TagItem     = "market/item"
)

// RegisterRoutes registers handlers for all ledger messages.
func RegisterRoutes(r artmarket.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&SellMsg{}, &sellHandler{auth: auth, ctrl: ctrl})
	r.Handle(&BuyMsg{}, &buyHandler{auth: auth, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, &withdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(configPkg, &Configuration{}, auth))
}

type sellHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *sellHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	var msg SellMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: sellCost}, nil
}

func (h *sellHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	var msg SellMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.PutItemForSale(db, caller, msg.TokenID, msg.Price, msg.Fee)
	if err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{
		Data: orm.EncodeSequence(id),
		Tags: []common.KVPair{
			artmarket.Tag(TagListed, idTag(msg.TokenID)),
			artmarket.Tag(TagItem, idTag(id)),
		},
	}, nil
}

type buyHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *buyHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	var msg BuyMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	if _, err := h.ctrl.ItemForSale(db, msg.TokenID); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: buyCost}, nil
}

func (h *buyHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	var msg BuyMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	item, err := h.ctrl.ItemForSale(db, msg.TokenID)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.BuyItem(db, caller, msg.TokenID, msg.Price); err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{
		Tags: []common.KVPair{
			artmarket.Tag(TagSold, idTag(msg.TokenID)),
			artmarket.Tag(TagItem, idTag(item.ID)),
		},
	}, nil
}

type withdrawHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *withdrawHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	var msg WithdrawMsg
	if _, err := loadMsg(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h *withdrawHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	var msg WithdrawMsg
	caller, err := loadMsg(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	item, err := h.ctrl.ItemForSale(db, msg.TokenID)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.WithdrawFromSale(db, caller, msg.TokenID); err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{
		Tags: []common.KVPair{
			artmarket.Tag(TagCanceled, idTag(msg.TokenID)),
			artmarket.Tag(TagItem, idTag(item.ID)),
		},
	}, nil
}

// loadMsg loads the message into msg and returns the signer.
func loadMsg(ctx artmarket.Context, auth x.Authenticator, tx artmarket.Tx, msg artmarket.Msg) (artmarket.Address, error) {
	if err := artmarket.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.Caller(ctx, auth)
}

func idTag(id uint64) []byte {
	return []byte(strconv.FormatUint(id, 10))
}
