package marketplace

import (
	"context"
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/orm"
	"github.com/iov-one/artmarket/x/collectible"
	. "github.com/smartystreets/goconvey/convey"
)

type routes map[string]artmarket.Handler

func (r routes) Handle(m artmarket.Msg, h artmarket.Handler) {
	r[m.Path()] = h
}

func TestMarketScenario(t *testing.T) {
	Convey("Given a registry and a market sharing one store", t, func() {
		f := newMarketFixture(t)
		Convey("When a token is minted and listed", func() {
			token := f.mint(t, f.alice, "cid1")
			So(token, ShouldEqual, uint64(1))
			item := f.list(t, f.alice, token, 12)

			Convey("The custodian holds the token", func() {
				So(f.owner(t, token), ShouldResemble, Custodian)
				available, err := f.ledger.AvailableItems(f.db)
				So(err, ShouldBeNil)
				So(len(available), ShouldEqual, 1)
				So(available[0].ID, ShouldEqual, item)
			})

			Convey("Another listing of the same token is rejected", func() {
				_, err := f.ledger.PutItemForSale(f.db, f.alice, token, 12, testFee)
				So(ErrNotOwner.Is(err), ShouldBeTrue)
			})

			Convey("And bought for the exact price", func() {
				So(f.ledger.BuyItem(f.db, f.bob, token, 12), ShouldBeNil)

				So(f.owner(t, token), ShouldResemble, f.bob)
				sold, err := f.ledger.CountSold(f.db)
				So(err, ShouldBeNil)
				So(sold, ShouldEqual, uint64(1))

				events, err := f.ledger.TokenEvents(f.db, token)
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 2)
				So(events[0].Kind, ShouldEqual, Listed)
				So(events[1].Kind, ShouldEqual, Sold)

				Convey("The buyer can list it again under a new item", func() {
					next := f.list(t, f.bob, token, 30)
					So(next, ShouldEqual, item+1)

					history, err := f.ledger.MarketHistory(f.db)
					So(err, ShouldBeNil)
					So(len(history), ShouldEqual, 2)
				})
			})

			Convey("A wrong price keeps the listing", func() {
				err := f.ledger.BuyItem(f.db, f.bob, token, 11)
				So(ErrWrongPrice.Is(err), ShouldBeTrue)
				So(f.owner(t, token), ShouldResemble, Custodian)
				listed, err := f.ledger.ItemForSale(f.db, token)
				So(err, ShouldBeNil)
				So(listed.ID, ShouldEqual, item)
			})
		})
	})
}

func TestMarketHandlers(t *testing.T) {
	Convey("Given signed messages routed to the market handlers", t, func() {
		f := newMarketFixture(t)
		auth := &artmarkettest.CtxAuth{Key: "signers"}
		r := routes{}
		collectible.RegisterRoutes(r, auth, f.registry)
		RegisterRoutes(r, auth, f.ledger)

		alice := artmarkettest.NewCondition()
		bob := artmarkettest.NewCondition()
		for _, c := range []artmarket.Condition{alice, bob} {
			So(f.cash.IssueCoins(f.db, c.Address(), 50), ShouldBeNil)
		}

		deliver := func(signer artmarket.Condition, msg artmarket.Msg) (*artmarket.DeliverResult, error) {
			ctx := auth.SetConditions(context.Background(), signer)
			tx := &artmarkettest.Tx{Msg: msg}
			h := r[msg.Path()]
			cache := f.db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			cache.Discard()
			if err != nil {
				return nil, err
			}
			return h.Deliver(ctx, f.db, tx)
		}

		res, err := deliver(alice, &collectible.MintMsg{MetadataRef: "cid1", Royalty: 10})
		So(err, ShouldBeNil)
		token := orm.DecodeSequence(res.Data)

		Convey("Selling returns the new item id", func() {
			res, err := deliver(alice, &SellMsg{TokenID: token, Price: 12, Fee: testFee})
			So(err, ShouldBeNil)
			So(orm.DecodeSequence(res.Data), ShouldEqual, uint64(1))
			So(tagValue(res, TagListed), ShouldResemble, []byte("1"))

			Convey("Buying emits the sold tag", func() {
				res, err := deliver(bob, &BuyMsg{TokenID: token, Price: 12})
				So(err, ShouldBeNil)
				So(tagValue(res, TagSold), ShouldResemble, []byte("1"))
				So(tagValue(res, TagItem), ShouldResemble, []byte("1"))
			})

			Convey("Only the seller can withdraw", func() {
				_, err := deliver(bob, &WithdrawMsg{TokenID: token})
				So(ErrNotSeller.Is(err), ShouldBeTrue)
				res, err := deliver(alice, &WithdrawMsg{TokenID: token})
				So(err, ShouldBeNil)
				So(tagValue(res, TagCanceled), ShouldResemble, []byte("1"))
			})

			Convey("Buying an unlisted token is rejected before delivery", func() {
				_, err := deliver(bob, &BuyMsg{TokenID: 99, Price: 12})
				So(ErrItemNotListed.Is(err), ShouldBeTrue)
			})
		})

		Convey("Invalid messages are rejected", func() {
			_, err := deliver(alice, &SellMsg{TokenID: token, Price: 0, Fee: testFee})
			So(ErrPriceTooLow.Is(err), ShouldBeTrue)
			_, err = deliver(alice, &BuyMsg{})
			So(err, ShouldNotBeNil)
		})

		Convey("Only the owner can update the configuration", func() {
			patch := &UpdateConfigurationMsg{Patch: &Configuration{ListingFee: 3}}
			_, err := deliver(alice, patch)
			So(err, ShouldNotBeNil)

			fee, err := f.ledger.ListingFee(f.db)
			So(err, ShouldBeNil)
			So(fee, ShouldEqual, uint64(testFee))
		})
	})
}

func tagValue(res *artmarket.DeliverResult, key string) []byte {
	for _, tag := range res.Tags {
		if string(tag.Key) == key {
			return tag.Value
		}
	}
	return nil
}
