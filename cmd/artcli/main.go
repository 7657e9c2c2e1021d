package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/artmarket"
)

// A command reads from input, writes to output and receives the arguments
// that follow its name. Only a flag parse failure may exit the process.
type command func(input io.Reader, output io.Writer, args []string) error

// Commands that build a transaction write it to output, so they compose with
// sign and view:
//
//	$ artcli sell -token 3 -price 120 \
//	    | artcli sign -seq 4 \
//	    | artcli view
var commands = map[string]command{
	"burn":            cmdBurn,
	"buy":             cmdBuy,
	"keyaddr":         cmdKeyaddr,
	"keygen":          cmdKeygen,
	"mint":            cmdMint,
	"pause-registry":  cmdPauseRegistry,
	"sell":            cmdSell,
	"send-tokens":     cmdSendTokens,
	"set-listing-fee": cmdSetListingFee,
	"sign":            cmdSignTransaction,
	"transfer":        cmdTransfer,
	"version":         cmdVersion,
	"view":            cmdTransactionView,
	"withdraw":        cmdWithdraw,
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	prog := os.Args[0]
	fmt.Fprintf(w, "%s builds, signs and inspects artmarket transactions.\n\n", prog)
	fmt.Fprintf(w, "Usage: %s <command> [<flags>]\n\n", prog)
	fmt.Fprintf(w, "Commands:\n\t%s\n\n", strings.Join(names, "\n\t"))
	fmt.Fprintf(w, "Run '%s <command> -help' for the flags of a command.\n", prog)
}

func cmdVersion(input io.Reader, output io.Writer, args []string) error {
	_, err := fmt.Fprintln(output, artmarket.Version())
	return err
}
