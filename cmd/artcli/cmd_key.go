package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/artmarket/crypto"
	"golang.org/x/crypto/ed25519"
)

const keyFlagHelp = "Path to the private key file. You can use ARTCLI_PRIV_KEY environment variable to set it."

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new ed25519 private key and print its address.

The key is written hex encoded to a file readable only by the current user.
An existing key file is never replaced. A seed makes the key reproducible and
should only be used for test accounts.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(), keyFlagHelp)
		seedFl    = fl.String("seed", "", "Optional hex encoded 32 byte seed.")
	)
	fl.Parse(args)

	key, err := newKey(*seedFl)
	if err != nil {
		return err
	}
	// O_EXCL refuses to replace a key the user may still need.
	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create key file: %s", err)
	}
	if _, err := fmt.Fprintln(fd, hex.EncodeToString(key.Ed25519)); err != nil {
		fd.Close()
		return fmt.Errorf("cannot write key file: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot write key file: %s", err)
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func newKey(seed string) (*crypto.PrivateKey, error) {
	if seed == "" {
		return crypto.GenPrivKeyEd25519(), nil
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %s", err)
	}
	if len(raw) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(raw))
	}
	return crypto.PrivKeyEd25519FromSeed(raw), nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the address of a private key, as hex or in its bech32 form.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(), keyFlagHelp)
		bechFl    = fl.Bool("bech32", false, "Print the bech32 form of the address.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	out := addr.String()
	if *bechFl {
		out = addr.Bech32()
	}
	_, err = fmt.Fprintln(output, out)
	return err
}

func decodePrivateKey(path string) (*crypto.PrivateKey, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read key file: %s", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(content)))
	if err != nil {
		return nil, fmt.Errorf("key file %q is not hex encoded: %s", path, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("key file %q holds %d bytes, want %d", path, len(raw), ed25519.PrivateKeySize)
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
