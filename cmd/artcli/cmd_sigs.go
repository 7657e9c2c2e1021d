package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/artmarket/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The sequence must be the next nonce of the signer, as returned by the "/auth"
query of the node.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use ARTCLI_PRIV_KEY environment variable to set it.")
		chainFl = fl.String("chain", env("ARTCLI_CHAIN_ID", ""),
			"Chain ID the transaction is signed for. You can use ARTCLI_CHAIN_ID environment variable to set it.")
		seqFl = fl.Int64("seq", 0, "Sequence number of the signer.")
	)
	fl.Parse(args)

	if *chainFl == "" {
		return errors.New("chain ID is required")
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	sig, err := sigs.SignTx(key, tx, *chainFl, *seqFl)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
