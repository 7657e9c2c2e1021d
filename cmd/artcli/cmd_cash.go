package main

import (
	"flag"
	"fmt"
	"io"

	artmarketd "github.com/iov-one/artmarket/cmd/artmarketd/app"
	"github.com/iov-one/artmarket/x/cash"
)

func cmdSendTokens(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for transfering funds from the source account to the
destination account.
		`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source account address that the funds are send from.")
		dstFl    = flAddress(fl, "dst", "", "A destination account address that the funds are send to.")
		amountFl = fl.Uint64("amount", 1, "An amount that is to be transferred between the source to the destination accounts.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer operation.")
	)
	fl.Parse(args)

	tx := artmarketd.NewTx(&cash.SendMsg{
		Source:      *srcFl,
		Destination: *dstFl,
		Amount:      *amountFl,
		Memo:        *memoFl,
	})
	_, err := writeTx(output, tx)
	return err
}
