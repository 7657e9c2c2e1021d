package collectible

import (
	"context"
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/artmarkettest/assert"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
	"github.com/iov-one/artmarket/orm"
	"github.com/iov-one/artmarket/store"
	"github.com/iov-one/artmarket/x/policy"
)

type routes map[string]artmarket.Handler

func (r routes) Handle(m artmarket.Msg, h artmarket.Handler) {
	r[m.Path()] = h
}

func TestMintHandler(t *testing.T) {
	admin := artmarkettest.NewCondition()
	alice := artmarkettest.NewCondition()
	operator := artmarkettest.NewCondition().Address()

	db := store.MemStore()
	assert.Nil(t, gconf.Save(db, configPkg, &Configuration{Owner: admin.Address(), Marketplace: operator}))

	r := routes{}
	ctrl := NewController()
	RegisterRoutes(r, &artmarkettest.CtxAuth{Key: "auth"}, ctrl)
	auth := &artmarkettest.CtxAuth{Key: "auth"}

	run := func(signer artmarket.Condition, msg artmarket.Msg) (*artmarket.DeliverResult, error) {
		ctx := auth.SetConditions(context.Background(), signer)
		tx := &artmarkettest.Tx{Msg: msg}
		h := r[msg.Path()]
		cache := db.CacheWrap()
		_, checkErr := h.Check(ctx, cache, tx)
		cache.Discard()
		res, err := h.Deliver(ctx, db, tx)
		if err == nil && checkErr != nil {
			t.Fatalf("check failed while deliver passed: %+v", checkErr)
		}
		return res, err
	}

	res, err := run(alice, &MintMsg{MetadataRef: "first", Royalty: 5})
	assert.Nil(t, err)
	assert.Equal(t, orm.EncodeSequence(1), res.Data)
	assert.Equal(t, []byte("1"), tagValue(res, TagMinted))
	assert.Equal(t, []byte("1"), tagValue(res, TagTransfer))
	assert.Equal(t, []byte(operator.String()), tagValue(res, TagApproval))

	_, err = run(alice, &MintMsg{MetadataRef: "bad royalty", Royalty: MaxRoyalty + 1})
	assert.IsErr(t, ErrInvalidRoyalty, err)

	_, err = run(alice, &PauseMsg{Paused: true})
	assert.IsErr(t, policy.ErrNotOwner, err)
	_, err = run(admin, &PauseMsg{Paused: true})
	assert.Nil(t, err)
	_, err = run(alice, &MintMsg{MetadataRef: "second"})
	assert.IsErr(t, policy.ErrPaused, err)
	_, err = run(admin, &PauseMsg{Paused: false})
	assert.Nil(t, err)

	res, err = run(alice, &TransferMsg{TokenID: 1, Recipient: admin.Address()})
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), tagValue(res, TagTransfer))
	owner, err := ctrl.OwnerOf(db, 1)
	assert.Nil(t, err)
	assert.Equal(t, admin.Address(), owner)

	_, err = run(alice, &BurnMsg{TokenID: 1})
	assert.IsErr(t, ErrNotOwner, err)
	_, err = run(admin, &BurnMsg{TokenID: 1})
	assert.Nil(t, err)
	_, err = ctrl.Get(db, 1)
	assert.IsErr(t, ErrTokenNotFound, err)

	_, err = run(alice, &UpdateConfigurationMsg{Patch: &Configuration{Owner: alice.Address()}})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = run(admin, &UpdateConfigurationMsg{Patch: &Configuration{Owner: alice.Address()}})
	assert.Nil(t, err)
	_, err = run(alice, &PauseMsg{Paused: true})
	assert.Nil(t, err)
}

func tagValue(res *artmarket.DeliverResult, key string) []byte {
	for _, tag := range res.Tags {
		if string(tag.Key) == key {
			return tag.Value
		}
	}
	return nil
}
