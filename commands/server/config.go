package server

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/artmarket/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Config holds the daemon runtime configuration. Values are read from the
// environment first and can be overridden with command line flags.
type Config struct {
	Home        string `env:"ARTMARKET_HOME"`
	ABCIAddr    string `env:"ARTMARKET_ABCI_ADDR"    envDefault:"tcp://localhost:26658"`
	MetricsAddr string `env:"ARTMARKET_METRICS_ADDR" envDefault:"localhost:9102"`
	LogLevel    string `env:"ARTMARKET_LOG_LEVEL"    envDefault:"info"`
	LogFormat   string `env:"ARTMARKET_LOG_FORMAT"   envDefault:"text"`
	Debug       bool   `env:"ARTMARKET_DEBUG"`
}

// LoadConfig reads the configuration from the environment. An unset home
// directory defaults to $HOME/.artmarket.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrInput, "parse env: %s", err)
	}
	if cfg.Home == "" {
		cfg.Home = filepath.Join(os.ExpandEnv("$HOME"), ".artmarket")
	}
	return cfg, nil
}

// RegisterFlags binds the configuration to given flag set. Current values are
// used as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Home, "home", c.Home, "directory to store files under")
	fs.StringVar(&c.ABCIAddr, "bind", c.ABCIAddr, "address server listens on")
	fs.StringVar(&c.MetricsAddr, "metrics", c.MetricsAddr, "address of the prometheus metrics endpoint, empty to disable")
	fs.StringVar(&c.LogLevel, "log_level", c.LogLevel, "one of debug, info, error or none")
	fs.StringVar(&c.LogFormat, "log_format", c.LogFormat, "text or json")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "call stack returned on error")
}

// Logger returns a logger writing to stdout using configured format and
// level.
func (c Config) Logger() (log.Logger, error) {
	var logger log.Logger
	switch c.LogFormat {
	case "text", "":
		logger = log.NewTMLogger(log.NewSyncWriter(os.Stdout))
	case "json":
		logger = log.NewTMJSONLogger(log.NewSyncWriter(os.Stdout))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown log format %q", c.LogFormat)
	}
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}

// DBPath returns the location of the application database.
func (c Config) DBPath() string {
	return filepath.Join(c.Home, "artmarket.db")
}

// GenesisPath returns the location of the genesis file shared with
// tendermint.
func (c Config) GenesisPath() string {
	return filepath.Join(c.Home, "config", "genesis.json")
}
