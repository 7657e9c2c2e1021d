package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest/assert"
	"github.com/iov-one/artmarket/x/cash"
	"github.com/iov-one/artmarket/x/collectible"
	"github.com/iov-one/artmarket/x/marketplace"
)

func readMsg(t testing.TB, output *bytes.Buffer) artmarket.Msg {
	t.Helper()
	tx, _, err := readTx(output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	msg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	return msg
}

func TestCmdSellHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{"-token", "3", "-price", "120"}
	if err := cmdSell(nil, &output, args); err != nil {
		t.Fatalf("cannot create a sell transaction: %s", err)
	}
	msg := readMsg(t, &output).(*marketplace.SellMsg)
	assert.Equal(t, uint64(3), msg.TokenID)
	assert.Equal(t, uint64(120), msg.Price)
	assert.Equal(t, uint64(marketplace.DefaultListingFee), msg.Fee)
}

func TestCmdBuyAndWithdraw(t *testing.T) {
	var output bytes.Buffer
	if err := cmdBuy(nil, &output, []string{"-token", "7", "-price", "50"}); err != nil {
		t.Fatalf("cannot create a buy transaction: %s", err)
	}
	if err := cmdWithdraw(nil, &output, []string{"-token", "8"}); err != nil {
		t.Fatalf("cannot create a withdraw transaction: %s", err)
	}

	buy := readMsg(t, &output).(*marketplace.BuyMsg)
	assert.Equal(t, &marketplace.BuyMsg{TokenID: 7, Price: 50}, buy)
	withdraw := readMsg(t, &output).(*marketplace.WithdrawMsg)
	assert.Equal(t, uint64(8), withdraw.TokenID)
}

func TestCmdSetListingFee(t *testing.T) {
	var output bytes.Buffer
	if err := cmdSetListingFee(nil, &output, []string{"-fee", "25"}); err != nil {
		t.Fatalf("cannot create a configuration transaction: %s", err)
	}
	msg := readMsg(t, &output).(*marketplace.UpdateConfigurationMsg)
	assert.Equal(t, uint64(25), msg.Patch.ListingFee)
}

func TestCmdMintAndTransfer(t *testing.T) {
	var output bytes.Buffer
	if err := cmdMint(nil, &output, []string{"-metadata", "bafyabc", "-royalty", "12"}); err != nil {
		t.Fatalf("cannot create a mint transaction: %s", err)
	}
	args := []string{"-token", "4", "-dst", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"}
	if err := cmdTransfer(nil, &output, args); err != nil {
		t.Fatalf("cannot create a transfer transaction: %s", err)
	}
	if err := cmdPauseRegistry(nil, &output, []string{"-resume"}); err != nil {
		t.Fatalf("cannot create a pause transaction: %s", err)
	}

	mint := readMsg(t, &output).(*collectible.MintMsg)
	assert.Equal(t, "bafyabc", mint.MetadataRef)
	assert.Equal(t, uint32(12), mint.Royalty)

	transfer := readMsg(t, &output).(*collectible.TransferMsg)
	assert.Equal(t, uint64(4), transfer.TokenID)
	assert.Equal(t, fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"), []byte(transfer.Recipient))

	pause := readMsg(t, &output).(*collectible.PauseMsg)
	assert.Equal(t, false, pause.Paused)
}

func TestCmdSendTokensHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-src", "b1ca7e78f74423ae01da3b51e676934d9105f282",
		"-dst", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "5",
		"-memo", "a memo",
	}
	if err := cmdSendTokens(nil, &output, args); err != nil {
		t.Fatalf("cannot create a new token transfer transaction: %s", err)
	}

	msg := readMsg(t, &output).(*cash.SendMsg)
	assert.Equal(t, fromHex(t, "b1ca7e78f74423ae01da3b51e676934d9105f282"), []byte(msg.Source))
	assert.Equal(t, fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"), []byte(msg.Destination))
	assert.Equal(t, "a memo", msg.Memo)
	assert.Equal(t, uint64(5), msg.Amount)
}

func TestFlagDieOnInvalidInput(t *testing.T) {
	cnt, cleanup := observeFlagDie(t)
	defer cleanup()

	var output bytes.Buffer
	_ = cmdSell(nil, &output, []string{"-token", "3"})
	_ = cmdSetListingFee(nil, &output, nil)
	assert.Equal(t, 2, *cnt)
}

// observeFlagDie replaces flagDie with a counter of its calls. Until the
// cleanup function is called, flagDie execution does not terminate the
// program.
func observeFlagDie(t testing.TB) (*int, func()) {
	t.Helper()

	original := flagDie

	var cnt int
	flagDie = func(s string, args ...interface{}) {
		cnt++
	}
	cleanup := func() {
		flagDie = original
	}
	return &cnt, cleanup
}
