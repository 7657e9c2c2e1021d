package collectible

import (
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/artmarkettest/assert"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/gconf"
	"github.com/iov-one/artmarket/store"
	"github.com/iov-one/artmarket/x/policy"
)

type registryFixture struct {
	db          store.CacheableKVStore
	ctrl        Controller
	admin       artmarket.Address
	marketplace artmarket.Address
	alice       artmarket.Address
	bob         artmarket.Address
}

func newRegistryFixture(t testing.TB) registryFixture {
	t.Helper()
	f := registryFixture{
		db:          store.MemStore(),
		ctrl:        NewController(),
		admin:       artmarkettest.NewCondition().Address(),
		marketplace: artmarkettest.NewCondition().Address(),
		alice:       artmarkettest.NewCondition().Address(),
		bob:         artmarkettest.NewCondition().Address(),
	}
	conf := Configuration{Owner: f.admin, Marketplace: f.marketplace}
	if err := gconf.Save(f.db, configPkg, &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	return f
}

func (f registryFixture) mint(t testing.TB, who artmarket.Address, ref string) uint64 {
	t.Helper()
	id, err := f.ctrl.Mint(f.db, who, ref, 20)
	if err != nil {
		t.Fatalf("cannot mint %q: %+v", ref, err)
	}
	return id
}

func (f registryFixture) balance(t testing.TB, who artmarket.Address) uint64 {
	t.Helper()
	n, err := f.ctrl.BalanceOf(f.db, who)
	if err != nil {
		t.Fatalf("cannot get balance: %+v", err)
	}
	return n
}

func TestMint(t *testing.T) {
	f := newRegistryFixture(t)

	assert.Equal(t, uint64(0), f.balance(t, f.alice))
	id, err := f.ctrl.Mint(f.db, f.alice, "cid-A", 20)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, uint64(1), f.balance(t, f.alice))

	token, err := f.ctrl.Get(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, f.alice, token.Creator)
	assert.Equal(t, f.alice, token.Owner)
	assert.Equal(t, uint32(20), token.Royalty)
	assert.Equal(t, "cid-A", token.MetadataRef)
	assert.Equal(t, true, token.Exists)

	// The same metadata cannot be minted twice, by anyone.
	_, err = f.ctrl.Mint(f.db, f.bob, "cid-A", 20)
	assert.IsErr(t, ErrDuplicateMetadata, err)
	assert.IsErr(t, errors.ErrConflict, err)

	_, err = f.ctrl.Mint(f.db, f.alice, "cid-B", 45)
	assert.IsErr(t, ErrInvalidRoyalty, err)
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, uint64(1), f.balance(t, f.alice))

	_, err = f.ctrl.Mint(f.db, f.alice, " ", 1)
	assert.IsErr(t, ErrInvalidMetadata, err)

	_, err = f.ctrl.Mint(f.db, nil, "cid-C", 1)
	assert.IsErr(t, errors.ErrInput, err)

	// Failed mints do not consume ids.
	id, err = f.ctrl.Mint(f.db, f.bob, "cid-B", MaxRoyalty)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), id)
	id, err = f.ctrl.Mint(f.db, f.bob, "cid-C", 0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), id)
}

func TestPause(t *testing.T) {
	f := newRegistryFixture(t)
	id := f.mint(t, f.alice, "before pause")

	assert.IsErr(t, policy.ErrNotOwner, f.ctrl.Pause(f.db, f.alice))
	assert.IsErr(t, errors.ErrUnauthorized, f.ctrl.Pause(f.db, f.alice))
	assert.IsErr(t, policy.ErrNotPaused, f.ctrl.Unpause(f.db, f.admin))

	assert.Nil(t, f.ctrl.Pause(f.db, f.admin))
	paused, err := f.ctrl.IsPaused(f.db)
	assert.Nil(t, err)
	assert.Equal(t, true, paused)
	assert.IsErr(t, policy.ErrPaused, f.ctrl.Pause(f.db, f.admin))

	_, err = f.ctrl.Mint(f.db, f.alice, "while paused", 1)
	assert.IsErr(t, policy.ErrPaused, err)
	assert.IsErr(t, errors.ErrState, err)

	// Everything but minting works while paused.
	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.alice, id, f.bob))
	assert.Nil(t, f.ctrl.Burn(f.db, f.bob, id))

	assert.IsErr(t, policy.ErrNotOwner, f.ctrl.Unpause(f.db, f.bob))
	assert.Nil(t, f.ctrl.Unpause(f.db, f.admin))
	_, err = f.ctrl.Mint(f.db, f.alice, "while paused", 1)
	assert.Nil(t, err)
}

func TestTransferCustody(t *testing.T) {
	f := newRegistryFixture(t)
	id := f.mint(t, f.alice, "cid-1")

	err := f.ctrl.TransferCustody(f.db, f.bob, id, f.bob)
	assert.IsErr(t, ErrNotOwner, err)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.IsErr(t, ErrTokenNotFound, f.ctrl.TransferCustody(f.db, f.alice, 99, f.bob))
	assert.IsErr(t, errors.ErrNotFound, f.ctrl.TransferCustody(f.db, f.alice, 99, f.bob))
	assert.IsErr(t, errors.ErrInput, f.ctrl.TransferCustody(f.db, f.alice, id, artmarket.Address("short")))

	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.alice, id, f.bob))
	owner, err := f.ctrl.OwnerOf(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, f.bob, owner)
	assert.Equal(t, uint64(0), f.balance(t, f.alice))
	assert.Equal(t, uint64(1), f.balance(t, f.bob))

	// The previous owner lost the right to move it.
	assert.IsErr(t, ErrNotOwner, f.ctrl.TransferCustody(f.db, f.alice, id, f.alice))

	// The marketplace operator can move any token.
	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.marketplace, id, f.marketplace))
	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.marketplace, id, f.alice))
	owner, err = f.ctrl.OwnerOf(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, f.alice, owner)

	// The creator does not change with custody.
	created, err := f.ctrl.CreatedBy(f.db, f.alice, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(created))
}

func TestOnlyOperatorTakesCustody(t *testing.T) {
	f := newRegistryFixture(t)
	id := f.mint(t, f.alice, "cid-1")

	err := f.ctrl.TransferCustody(f.db, f.alice, id, f.marketplace)
	assert.IsErr(t, ErrNotOwner, err)
	owner, err := f.ctrl.OwnerOf(f.db, id)
	assert.Nil(t, err)
	assert.Equal(t, f.alice, owner)
	assert.Equal(t, uint64(0), f.balance(t, f.marketplace))

	// Once the operator holds the token, it can hand it back.
	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.marketplace, id, f.marketplace))
	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.marketplace, id, f.alice))
	assert.Equal(t, uint64(1), f.balance(t, f.alice))
}

func TestBurn(t *testing.T) {
	f := newRegistryFixture(t)
	first := f.mint(t, f.alice, "cid-1")
	second := f.mint(t, f.alice, "cid-2")

	assert.IsErr(t, ErrNotOwner, f.ctrl.Burn(f.db, f.bob, first))
	assert.IsErr(t, ErrTokenNotFound, f.ctrl.Burn(f.db, f.alice, 42))

	assert.Nil(t, f.ctrl.Burn(f.db, f.alice, second))
	assert.Equal(t, uint64(1), f.balance(t, f.alice))

	_, err := f.ctrl.Get(f.db, second)
	assert.IsErr(t, ErrTokenNotFound, err)
	_, err = f.ctrl.OwnerOf(f.db, second)
	assert.IsErr(t, ErrTokenNotFound, err)
	assert.IsErr(t, ErrTokenNotFound, f.ctrl.Burn(f.db, f.alice, second))
	assert.IsErr(t, ErrTokenNotFound, f.ctrl.TransferCustody(f.db, f.alice, second, f.bob))

	created, err := f.ctrl.CreatedBy(f.db, f.alice, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, []Token{tokenOf(t, f, first)}, created)

	// The metadata reference can be used again but the id is not reused.
	third, err := f.ctrl.Mint(f.db, f.bob, "cid-2", 10)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), third)
}

func tokenOf(t testing.TB, f registryFixture, id uint64) Token {
	t.Helper()
	token, err := f.ctrl.Get(f.db, id)
	if err != nil {
		t.Fatalf("cannot get token %d: %+v", id, err)
	}
	return *token
}

func TestPagination(t *testing.T) {
	f := newRegistryFixture(t)
	a1 := f.mint(t, f.alice, "a1")
	a2 := f.mint(t, f.alice, "a2")
	b1 := f.mint(t, f.bob, "b1")
	a3 := f.mint(t, f.alice, "a3")
	a4 := f.mint(t, f.alice, "a4")
	assert.Nil(t, f.ctrl.TransferCustody(f.db, f.bob, b1, f.alice))

	ids := func(tokens []Token) []uint64 {
		res := make([]uint64, 0, len(tokens))
		for _, tok := range tokens {
			res = append(res, tok.ID)
		}
		return res
	}

	page, err := f.ctrl.OwnedBy(f.db, f.alice, 0, 2)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{a1, a2}, ids(page))

	page, err = f.ctrl.OwnedBy(f.db, f.alice, a2, 2)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{b1, a3}, ids(page))

	page, err = f.ctrl.OwnedBy(f.db, f.alice, a3, 2)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{a4}, ids(page))

	page, err = f.ctrl.OwnedBy(f.db, f.alice, a4, 2)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{}, ids(page))

	page, err = f.ctrl.CreatedBy(f.db, f.alice, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{a1, a2, a3, a4}, ids(page))

	page, err = f.ctrl.CreatedBy(f.db, f.bob, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, []uint64{b1}, ids(page))

	_, err = f.ctrl.OwnedBy(f.db, f.alice, 0, 0)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestGetMany(t *testing.T) {
	f := newRegistryFixture(t)
	a := f.mint(t, f.alice, "a")
	b := f.mint(t, f.bob, "b")

	tokens, err := f.ctrl.GetMany(f.db, []uint64{b, a, b})
	assert.Nil(t, err)
	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, b, tokens[0].ID)
	assert.Equal(t, a, tokens[1].ID)
	assert.Equal(t, b, tokens[2].ID)

	_, err = f.ctrl.GetMany(f.db, []uint64{a, 7, b})
	assert.IsErr(t, ErrTokenNotFound, err)

	token, err := f.ctrl.GetByMetadata(f.db, "b")
	assert.Nil(t, err)
	assert.Equal(t, b, token.ID)
	_, err = f.ctrl.GetByMetadata(f.db, "c")
	assert.IsErr(t, ErrTokenNotFound, err)
}

func TestSetMarketplace(t *testing.T) {
	f := newRegistryFixture(t)
	operator := artmarkettest.NewCondition().Address()

	assert.IsErr(t, policy.ErrNotOwner, f.ctrl.SetMarketplace(f.db, f.alice, operator))
	assert.IsErr(t, errors.ErrInput, f.ctrl.SetMarketplace(f.db, f.admin, nil))
	assert.Nil(t, f.ctrl.SetMarketplace(f.db, f.admin, operator))

	got, err := f.ctrl.Marketplace(f.db)
	assert.Nil(t, err)
	assert.Equal(t, operator, got)

	id := f.mint(t, f.alice, "cid")
	assert.IsErr(t, ErrNotOwner, f.ctrl.TransferCustody(f.db, f.marketplace, id, f.bob))
	assert.Nil(t, f.ctrl.TransferCustody(f.db, operator, id, f.bob))
}

func TestControllerIdentity(t *testing.T) {
	ctrl := NewController()
	assert.Equal(t, "ArtCollectible", ctrl.Name())
	assert.Nil(t, ctrl.Address().Validate())
	assert.Equal(t, ctrl.Address(), NewController().Address())
}
