package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"berdoz/internal/amqp"
	"berdoz/internal/cache"
	"berdoz/internal/cli"
	apphttp "berdoz/internal/http"
	"berdoz/internal/services"
	"berdoz/internal/upload"
	"berdoz/internal/validate"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("berdoz")
	cfg := cli.LoadAndValidateConfig(logger.Logger)

	be := cli.InitBackend(context.Background(), logger.Logger, cfg)
	defer be.Cleanup()

	// AMQP is optional; without it the worker still drains the outbox
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger.Logger)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change events", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	uploadStorage, err := cli.NewUploadStorage(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize upload storage", "error", err, "backend", cfg.UploadBackend)
		os.Exit(1)
	}
	uploadDir := ""
	if local, ok := uploadStorage.(*upload.LocalStorage); ok {
		uploadDir = local.Dir()
	}

	caches := cache.NewManager(logger.Logger)
	catalog := services.NewCatalog(be.Tables, services.Deps{
		Outbox:    be.Outbox,
		Publisher: publisher,
		Validator: validate.New(),
		Logger:    logger.Logger,
		Caches:    caches,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})

	srv := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + cfg.Port,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		UploadDir:          uploadDir,
	}, apphttp.Deps{
		Catalog: catalog,
		Uploads: upload.NewService(uploadStorage, logger.Logger),
		Pinger:  be.Pinger,
		Logger:  logger,
	})
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting berdoz server", "port", cfg.Port, "backend", cfg.DataBackend, "uploads", cfg.UploadBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return caches.Run(gctx, time.Minute)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
