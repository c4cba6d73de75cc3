package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"berdoz/internal/cli"
	"berdoz/internal/client"
	"berdoz/internal/config"
	"berdoz/internal/console"
	applog "berdoz/internal/log"
	"berdoz/internal/session"
	"berdoz/internal/validate"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()

	var apiURL, logLevel string
	flag.StringVar(&apiURL, "api", cfg.APIURL, "Base URL of the berdoz API")
	flag.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [module]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// stdout belongs to the console
	logger := applog.FromEnv(os.Stderr, logLevel, cfg.LogFormat, "berdoz-cli")

	gates, err := session.ParseGates(cfg.Gates)
	if err != nil {
		logger.Error("Invalid GATES", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := console.NewApp(console.Config{
		API:       client.NewHTTP(apiURL, client.WithLogger(logger.Logger)),
		Session:   session.New(gates),
		Validator: validate.New(),
		Logger:    logger.Logger,
	})

	if module := flag.Arg(0); module != "" {
		if err := app.Use(ctx, module); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("Console stopped with error", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
