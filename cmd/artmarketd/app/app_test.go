package artmarketd

import (
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/app"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/commands/server"
	"github.com/iov-one/artmarket/crypto"
	"github.com/iov-one/artmarket/orm"
	"github.com/iov-one/artmarket/x/cash"
	"github.com/iov-one/artmarket/x/collectible"
	"github.com/iov-one/artmarket/x/marketplace"
	"github.com/iov-one/artmarket/x/sigs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const chainID = "test-chain-1"

type signer struct {
	key *crypto.PrivateKey
	seq int64
}

func newSigner(seed byte) *signer {
	s := make([]byte, 32)
	s[0] = seed
	return &signer{key: crypto.PrivKeyEd25519FromSeed(s)}
}

func (s *signer) address() artmarket.Address {
	return s.key.PublicKey().Address()
}

// sign returns a transaction carrying msg signed with the next sequence.
func (s *signer) sign(t testing.TB, msg artmarket.Msg) *Tx {
	t.Helper()
	tx := NewTx(msg)
	sig, err := sigs.SignTx(s.key, tx, chainID, s.seq)
	require.NoError(t, err)
	tx.Signatures = append(tx.Signatures, sig)
	s.seq++
	return tx
}

func newTestApp(t testing.TB) (abci.Application, *artmarkettest.Runner) {
	t.Helper()
	abciApp, err := GenerateApp(server.Config{}, log.NewNopLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	return abciApp, artmarkettest.NewRunner(t, abciApp, chainID)
}

func deliver(t testing.TB, runner *artmarkettest.Runner, tx *Tx) *artmarket.DeliverResult {
	t.Helper()
	var res *artmarket.DeliverResult
	runner.InBlock(func(r artmarkettest.TxRunner) error {
		var err error
		res, err = r.DeliverTx(tx)
		return err
	})
	return res
}

func TestMarketOverABCI(t *testing.T) {
	owner := newSigner(1)
	alice := newSigner(2)
	bob := newSigner(3)

	abciApp, runner := newTestApp(t)
	genesis := NewGenesis(owner.address(), 1000)
	genesis.Cash = append(genesis.Cash,
		cash.GenesisAccount{Address: alice.address(), Balance: 100},
		cash.GenesisAccount{Address: bob.address(), Balance: 100},
	)
	runner.InitChain(genesis)

	res := deliver(t, runner, alice.sign(t, &collectible.MintMsg{MetadataRef: "cid1", Royalty: 10}))
	token := orm.DecodeSequence(res.Data)
	require.Equal(t, uint64(1), token)

	res = deliver(t, runner, alice.sign(t, &marketplace.SellMsg{TokenID: token, Price: 40, Fee: marketplace.DefaultListingFee}))
	require.Equal(t, uint64(1), orm.DecodeSequence(res.Data))

	deliver(t, runner, bob.sign(t, &marketplace.BuyMsg{TokenID: token, Price: 40}))

	db := app.NewABCIStore(abciApp)
	ctrl := NewControllers(log.NewNopLogger())

	tokenOwner, err := ctrl.Collectible.OwnerOf(db, token)
	require.NoError(t, err)
	require.Equal(t, bob.address(), tokenOwner)

	balances := map[string]struct {
		who  artmarket.Address
		want uint64
	}{
		"listing fee goes to the owner": {owner.address(), 1010},
		"seller receives the price":     {alice.address(), 130},
		"buyer pays the price":          {bob.address(), 60},
	}
	for name, b := range balances {
		got, err := ctrl.Cash.Balance(db, b.who)
		require.NoError(t, err, name)
		require.Equal(t, b.want, got, name)
	}

	stats, err := ctrl.Marketplace.MarketStatistics(db)
	require.NoError(t, err)
	require.Equal(t, uint64(0), stats.Available)
	require.Equal(t, uint64(1), stats.Sold)

	wallet, err := ctrl.Marketplace.WalletStatistics(db, bob.address())
	require.NoError(t, err)
	require.Equal(t, uint64(1), wallet.Bought)

	// the item index is available over the query router
	q := runner.Query("/market/items", orm.EncodeSequence(1))
	var keys app.ResultSet
	require.NoError(t, keys.Unmarshal(q.Key))
	require.Len(t, keys.Results, 1)
	var item marketplace.MarketItem
	require.NoError(t, app.UnmarshalOneResult(q.Value, &item))
	require.True(t, item.Sold)
	require.Equal(t, bob.address(), item.Owner)
}

func TestRejectedTransactions(t *testing.T) {
	owner := newSigner(1)
	alice := newSigner(2)

	_, runner := newTestApp(t)
	runner.InitChain(NewGenesis(owner.address(), 1000))

	// unsigned transactions have no caller
	err := runner.CheckTx(NewTx(&collectible.MintMsg{MetadataRef: "cid1"}))
	require.Error(t, err)

	// a signature made for an old sequence is refused
	stale := alice.sign(t, &collectible.MintMsg{MetadataRef: "cid1"})
	require.NoError(t, runner.CheckTx(stale))
	alice.seq = 0
	replay := alice.sign(t, &collectible.MintMsg{MetadataRef: "cid2"})
	runner.InBlock(func(r artmarkettest.TxRunner) error {
		if _, err := r.DeliverTx(replay); err != nil {
			return err
		}
		if _, err := r.DeliverTx(stale); err == nil {
			t.Fatal("replayed sequence must fail")
		}
		return nil
	})

	// only the owner can pause the registry
	err = runner.CheckTx(alice.sign(t, &collectible.PauseMsg{Paused: true}))
	require.Error(t, err)
	require.NoError(t, runner.CheckTx(owner.sign(t, &collectible.PauseMsg{Paused: true})))
}

func TestTxSignBytesIgnoreSignatures(t *testing.T) {
	alice := newSigner(2)
	tx := alice.sign(t, &collectible.BurnMsg{TokenID: 7})

	withSig, err := tx.GetSignBytes()
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 1)
	plain, err := NewTx(&collectible.BurnMsg{TokenID: 7}).GetSignBytes()
	require.NoError(t, err)
	require.Equal(t, plain, withSig)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	require.Equal(t, "collectible/burn", msg.Path())

	_, err = TxDecoder(nil)
	require.Error(t, err)
}
