package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"redlist_dashboard/internal/config"
	"redlist_dashboard/internal/publisher"
	"redlist_dashboard/internal/scheduler"
	"redlist_dashboard/internal/service"
	"redlist_dashboard/internal/source/gbif"
	"redlist_dashboard/internal/source/iucn"
	"redlist_dashboard/internal/storage/snapshotfile"
	"redlist_dashboard/internal/taxon"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	taxonID := flag.String("taxon", "all", "taxon id to ingest, or \"all\"")
	resume := flag.Bool("resume", false, "resume from an incomplete snapshot")
	source := flag.String("source", "all", "which upstream to fetch: all, iucn or gbif")
	match := flag.String("match", "", "resolve a scientific name to a GBIF usage key and exit")
	interval := flag.Bool("interval", false, "keep running, re-ingesting on the configured interval")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	gbifSource := gbif.New(gbif.Config{
		BaseURL:     cfg.GBIF.BaseURL,
		Timeout:     cfg.GBIF.Timeout,
		FacetLimit:  cfg.GBIF.FacetLimit,
		MaxAttempts: cfg.GBIF.Retry.MaxAttempts,
		BackoffStep: cfg.GBIF.Retry.BackoffStep,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if *match != "" {
		key, matchType, err := gbifSource.MatchSpecies(ctx, *match)
		if err != nil {
			logger.Error("species match failed", "name", *match, "error", err)
			os.Exit(1)
		}
		fmt.Printf("%s\t%s\t%d\n", *match, matchType, key)
		return
	}

	needIUCN := *source == "all" || *source == "iucn"
	if needIUCN && cfg.IUCN.Token == "" {
		logger.Error("IUCN_API_TOKEN is not set; refusing to start ingestion")
		os.Exit(1)
	}

	taxa, err := selectTaxa(*taxonID)
	if err != nil {
		logger.Error("invalid taxon selection", "error", err)
		os.Exit(1)
	}

	iucnSource := iucn.New(iucn.Config{
		BaseURL:          cfg.IUCN.BaseURL,
		Token:            cfg.IUCN.Token,
		Timeout:          cfg.IUCN.Timeout,
		MaxAttempts:      cfg.IUCN.Retry.MaxAttempts,
		BackoffStep:      cfg.IUCN.Retry.BackoffStep,
		DetailBatchSize:  cfg.IUCN.DetailBatchSize,
		DetailBatchDelay: cfg.IUCN.DetailBatchDelay,
	}, logger)

	snapshots := snapshotfile.NewStore(cfg.DataDir)
	occurrences := snapshotfile.NewOccurrenceStore(cfg.DataDir)

	var pub service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	ingest := service.NewIngestService(
		iucnSource,
		gbifSource,
		snapshots,
		occurrences,
		pub,
		logger,
		cfg.Ingest,
		taxa,
	)

	if *interval {
		sched := scheduler.NewScheduler(ingest, cfg.Ingest.Interval, logger)
		logger.Info("starting scheduled ingestion", "interval", cfg.Ingest.Interval)
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
			os.Exit(1)
		}
		return
	}

	failed := false
	for _, tc := range taxa {
		if needIUCN {
			if _, err := ingest.Ingest(ctx, tc, *resume); err != nil {
				logger.Error("ingestion failed", "taxon", tc.ID, "error", err)
				failed = true
			}
		}
		if *source == "all" || *source == "gbif" {
			if _, err := ingest.IngestOccurrences(ctx, tc); err != nil {
				logger.Error("occurrence ingestion failed", "taxon", tc.ID, "error", err)
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func selectTaxa(id string) ([]taxon.Config, error) {
	if id == "all" {
		return taxon.All(), nil
	}
	tc, ok := taxon.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown taxon %q", id)
	}
	return []taxon.Config{tc}, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
