package main

import (
	"flag"
	"fmt"
	"io"

	artmarketd "github.com/iov-one/artmarket/cmd/artmarketd/app"
	"github.com/iov-one/artmarket/x/marketplace"
)

func cmdSell(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction that lists a token for sale. The token is moved to the
market custody until it is bought or withdrawn.
		`)
		fl.PrintDefaults()
	}
	var (
		tokenFl = fl.Uint64("token", 0, "Token ID.")
		priceFl = fl.Uint64("price", 0, "Asking price.")
		feeFl   = fl.Uint64("fee", marketplace.DefaultListingFee, "Listing fee. It must match the current market fee.")
	)
	fl.Parse(args)

	if *priceFl == 0 {
		flagDie("price must be greater than zero.")
	}
	tx := artmarketd.NewTx(&marketplace.SellMsg{
		TokenID: *tokenFl,
		Price:   *priceFl,
		Fee:     *feeFl,
	})
	_, err := writeTx(output, tx)
	return err
}

func cmdBuy(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction that buys a listed token for its asking price.
		`)
		fl.PrintDefaults()
	}
	var (
		tokenFl = fl.Uint64("token", 0, "Token ID.")
		priceFl = fl.Uint64("price", 0, "Price paid. It must match the asking price.")
	)
	fl.Parse(args)

	tx := artmarketd.NewTx(&marketplace.BuyMsg{
		TokenID: *tokenFl,
		Price:   *priceFl,
	})
	_, err := writeTx(output, tx)
	return err
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction that cancels a listing and returns the token to the seller.
		`)
		fl.PrintDefaults()
	}
	tokenFl := fl.Uint64("token", 0, "Token ID.")
	fl.Parse(args)

	_, err := writeTx(output, artmarketd.NewTx(&marketplace.WithdrawMsg{TokenID: *tokenFl}))
	return err
}

func cmdSetListingFee(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction that changes the listing fee. Only the market owner can
sign it.
		`)
		fl.PrintDefaults()
	}
	feeFl := fl.Uint64("fee", 0, "New listing fee.")
	fl.Parse(args)

	if *feeFl == 0 {
		flagDie("a configuration update cannot set a zero fee.")
	}
	tx := artmarketd.NewTx(&marketplace.UpdateConfigurationMsg{
		Patch: &marketplace.Configuration{ListingFee: *feeFl},
	})
	_, err := writeTx(output, tx)
	return err
}
