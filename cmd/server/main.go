package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/carbonloop/metallca/pkg/api"
	"github.com/carbonloop/metallca/pkg/config"
	"github.com/carbonloop/metallca/pkg/engine"
	"github.com/carbonloop/metallca/pkg/graph"
	"github.com/carbonloop/metallca/pkg/history"
	"github.com/carbonloop/metallca/pkg/lca"
	"github.com/carbonloop/metallca/pkg/logging"
	"github.com/carbonloop/metallca/pkg/metrics"
	"github.com/carbonloop/metallca/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	logger.Info("metallca server starting", logging.Int("port", cfg.Port))

	registry := metrics.NewRegistry()
	eng := engine.New(graph.NewStore(), logger, registry)

	predictor := lca.NewDefault()
	if cfg.PredictorSeed != 0 {
		predictor = lca.New(cfg.PredictorSeed)
	}

	// Analysis history is optional: without a database URL the service runs
	// with the in-memory engine only.
	var store *history.PGStore
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err = history.NewPGStore(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			logger.Warn("analysis history disabled", logging.Error(err))
			store = nil
		} else {
			defer store.Close()
			logger.Info("analysis history connected")
		}
	}

	apiServer := api.NewServer(eng, predictor, cfg.Port, api.Options{
		History:     store,
		Logger:      logger,
		Registry:    registry,
		CORSOrigins: cfg.CORSOrigins,
	})

	gs := server.NewGracefulServer(fmt.Sprintf(":%d", cfg.Port), apiServer.Handler(), logger)
	if err := gs.Start(); err != nil {
		logger.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
}
