package main

import (
	"flag"
	"fmt"
	"io"

	artmarketd "github.com/iov-one/artmarket/cmd/artmarketd/app"
	"github.com/iov-one/artmarket/x/collectible"
)

func cmdMint(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for minting a new token. The signer of the transaction
becomes the creator and the owner of the token.
		`)
		fl.PrintDefaults()
	}
	var (
		metaFl    = fl.String("metadata", "", "Content identifier of the token metadata document.")
		royaltyFl = fl.Uint("royalty", 0, fmt.Sprintf("Creator royalty, at most %d.", collectible.MaxRoyalty))
	)
	fl.Parse(args)

	if *metaFl == "" {
		flagDie("metadata reference must be provided.")
	}
	tx := artmarketd.NewTx(&collectible.MintMsg{
		MetadataRef: *metaFl,
		Royalty:     uint32(*royaltyFl),
	})
	_, err := writeTx(output, tx)
	return err
}

func cmdTransfer(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for transferring a token to another account.
		`)
		fl.PrintDefaults()
	}
	var (
		tokenFl = fl.Uint64("token", 0, "Token ID.")
		dstFl   = flAddress(fl, "dst", "", "Address of the new token owner.")
	)
	fl.Parse(args)

	tx := artmarketd.NewTx(&collectible.TransferMsg{
		TokenID:   *tokenFl,
		Recipient: *dstFl,
	})
	_, err := writeTx(output, tx)
	return err
}

func cmdBurn(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for destroying a token. Only the token owner can burn it.
		`)
		fl.PrintDefaults()
	}
	tokenFl := fl.Uint64("token", 0, "Token ID.")
	fl.Parse(args)

	_, err := writeTx(output, artmarketd.NewTx(&collectible.BurnMsg{TokenID: *tokenFl}))
	return err
}

func cmdPauseRegistry(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction that pauses or resumes the token registry. While paused,
no token can be minted, transferred or burned.
		`)
		fl.PrintDefaults()
	}
	resumeFl := fl.Bool("resume", false, "Resume a paused registry instead of pausing it.")
	fl.Parse(args)

	_, err := writeTx(output, artmarketd.NewTx(&collectible.PauseMsg{Paused: !*resumeFl}))
	return err
}
