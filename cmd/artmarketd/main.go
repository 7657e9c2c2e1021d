package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/artmarket"
	artmarketd "github.com/iov-one/artmarket/cmd/artmarketd/app"
	"github.com/iov-one/artmarket/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

type command struct {
	help string
	run  func(cfg *server.Config, logger log.Logger, args []string) error
}

var commands = []struct {
	name string
	command
}{
	{"init", command{"write the app options into the genesis file", func(cfg *server.Config, logger log.Logger, args []string) error {
		return server.InitCmd(artmarketd.GenInitOptions, logger, cfg.Home, args)
	}}},
	{"start", command{"run the ABCI server", func(cfg *server.Config, logger log.Logger, _ []string) error {
		return server.StartCmd(artmarketd.GenerateApp, logger, *cfg)
	}}},
	{"validate", command{"load genesis files into an empty store", func(cfg *server.Config, _ log.Logger, args []string) error {
		if len(args) == 0 {
			args = []string{cfg.GenesisPath()}
		}
		return server.ValidateGenesis(artmarketd.Initializers(), args)
	}}},
	{"version", command{"print the app version", func(*server.Config, log.Logger, []string) error {
		fmt.Println(artmarket.Version())
		return nil
	}}},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "artmarketd runs a digital art marketplace node.\n\nUsage: artmarketd [flags] <command> [args]\n\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-9s %s\n", c.name, c.help)
	}
	fmt.Fprintf(out, "\nEvery flag can also be set with an ARTMARKET_ prefixed environment variable.\n\n")
	flag.PrintDefaults()
}

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		exit(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = usage
	flag.Parse()

	name := flag.Arg(0)
	if name == "" || name == "help" {
		usage()
		os.Exit(2)
	}
	logger, err := cfg.Logger()
	if err != nil {
		exit(err)
	}
	logger = logger.With("module", artmarketd.Name)

	for _, c := range commands {
		if c.name == name {
			if err := c.run(&cfg, logger, flag.Args()[1:]); err != nil {
				exit(err)
			}
			return
		}
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
	os.Exit(1)
}
