package collectible

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
	mintCost     int64 = 100
	transferCost int64 = 50
	burnCost     int64 = 50

	// Result tags, named after the events of an ERC721 collection.
	TagTransfer = "collectible/transfer"
	TagApproval = "collectible/approval"
	TagMinted   = "collectible/minted"
)

// RegisterQuery registers the tokens bucket under "/tokens". Secondary
// indexes are available as "/tokens/owner", "/tokens/creator" and
// "/tokens/metadata".
func RegisterQuery(qr artmarket.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
}

// RegisterRoutes registers handlers for all registry messages.
func RegisterRoutes(r artmarket.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&MintMsg{}, &mintHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&BurnMsg{}, &burnHandler{auth: auth, ctrl: ctrl})
	r.Handle(&PauseMsg{}, &pauseHandler{auth: auth, ctrl: ctrl})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(configPkg, &Configuration{}, auth))
}

type mintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *mintHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: mintCost}, nil
}

func (h *mintHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Mint(db, caller, msg.MetadataRef, msg.Royalty)
	if err != nil {
		return nil, err
	}
	tags := []common.KVPair{
		artmarket.Tag(TagTransfer, tokenTag(id)),
		artmarket.Tag(TagMinted, tokenTag(id)),
	}
	if operator, err := h.ctrl.Marketplace(db); err == nil && len(operator) != 0 {
		tags = append(tags, artmarket.Tag(TagApproval, []byte(operator.String())))
	}
	return &artmarket.DeliverResult{Data: orm.EncodeSequence(id), Tags: tags}, nil
}

func (h *mintHandler) validate(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*MintMsg, artmarket.Address, error) {
	var msg MintMsg
	if err := artmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.ctrl.pauser.RequireNotPaused(db); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type transferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *transferHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.TransferCustody(db, caller, msg.TokenID, msg.Recipient); err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{
		Tags: []common.KVPair{artmarket.Tag(TagTransfer, tokenTag(msg.TokenID))},
	}, nil
}

func (h *transferHandler) validate(ctx artmarket.Context, tx artmarket.Tx) (*TransferMsg, artmarket.Address, error) {
	var msg TransferMsg
	if err := artmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type burnHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *burnHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{GasAllocated: burnCost}, nil
}

func (h *burnHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Burn(db, caller, msg.TokenID); err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{
		Tags: []common.KVPair{artmarket.Tag(TagTransfer, tokenTag(msg.TokenID))},
	}, nil
}

func (h *burnHandler) validate(ctx artmarket.Context, tx artmarket.Tx) (*BurnMsg, artmarket.Address, error) {
	var msg BurnMsg
	if err := artmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type pauseHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *pauseHandler) Check(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &artmarket.CheckResult{}, nil
}

func (h *pauseHandler) Deliver(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*artmarket.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Paused {
		err = h.ctrl.Pause(db, caller)
	} else {
		err = h.ctrl.Unpause(db, caller)
	}
	if err != nil {
		return nil, err
	}
	return &artmarket.DeliverResult{}, nil
}

func (h *pauseHandler) validate(ctx artmarket.Context, db artmarket.KVStore, tx artmarket.Tx) (*PauseMsg, artmarket.Address, error) {
	var msg PauseMsg
	if err := artmarket.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.ctrl.requireOwner(db, caller); err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

func tokenTag(id uint64) []byte {
	return []byte(strconv.FormatUint(id, 10))
}
