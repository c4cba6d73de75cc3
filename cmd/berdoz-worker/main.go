package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"berdoz/internal/amqp"
	"berdoz/internal/cli"
	"berdoz/internal/services"
	"berdoz/internal/sheets"
	gsheet "berdoz/internal/sheets/google"
	memsheet "berdoz/internal/sheets/memory"
	"berdoz/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("berdoz-worker")
	logger.Info("Starting berdoz-worker")

	cfg := cli.LoadAndValidateConfig(logger.Logger)
	if cfg.DataBackend != "sqlite" {
		logger.Error("The worker shares the API database and requires DATA_BACKEND=sqlite", "backend", cfg.DataBackend)
		os.Exit(1)
	}

	be := cli.InitBackend(context.Background(), logger.Logger, cfg)
	defer be.Cleanup()

	var writer sheets.Writer
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleCredentials, logger.Logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = memsheet.New()
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, exporting to memory")
	}

	catalog := services.NewCatalog(be.Tables, services.Deps{Logger: logger.Logger})
	exporter := services.NewExporter(catalog, writer)

	processor := services.NewSyncProcessor(be.Outbox, exporter, services.SyncProcessorConfig{
		PollInterval: cfg.SyncInterval,
		BatchSize:    cfg.SyncBatchSize,
		MaxRetries:   cfg.SyncMaxRetries,
	}, logger.Logger)

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, nil)
	g, gctx := errgroup.WithContext(ctx)

	// The outbox ticker catches anything the event stream missed.
	g.Go(func() error {
		return processor.Run(gctx)
	})

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger.Logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		syncWorker := worker.NewSyncWorker(exporter, be.Outbox, logger.Logger)
		g.Go(func() error {
			err := client.ConsumeRecordChanges(gctx, syncWorker.HandleRecordChange)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP disabled - relying on periodic outbox sync only")
	}

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
