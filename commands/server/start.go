package server

import (
	"net/http"

	"github.com/iov-one/artmarket/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using the configuration and
// logger potentially initialized with other flags. Collectors are registered
// with given registerer.
type AppGenerator func(Config, log.Logger, prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application, and serves it over the ABCI socket
// until a termination signal is received.
func StartCmd(gen AppGenerator, logger log.Logger, cfg Config) error {
	reg := prometheus.NewRegistry()
	app, err := gen(cfg, logger, reg)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", cfg.ABCIAddr)
	svr, err := server.NewServer(cfg.ABCIAddr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	var metrics *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metrics = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			logger.Info("Serving metrics", "bind", cfg.MetricsAddr)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		svr.Stop()
		if metrics != nil {
			metrics.Close()
		}
	})
	return nil
}
