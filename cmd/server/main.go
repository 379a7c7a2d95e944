package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitit/splitit/internal/config"
	"github.com/splitit/splitit/internal/export"
	"github.com/splitit/splitit/internal/metrics"
	"github.com/splitit/splitit/internal/server"
	"github.com/splitit/splitit/internal/service"
	"github.com/splitit/splitit/internal/share"
	"github.com/splitit/splitit/internal/storage"
	"github.com/splitit/splitit/internal/storage/postgres"
	"github.com/splitit/splitit/internal/storage/sqlite"
	"github.com/splitit/splitit/pkg/logging"
)

func main() {
	app := &cli.App{
		Name:   "splitit-server",
		Usage:  "serve the SplitIt bill splitting API",
		Flags:  config.Flags(),
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.FromContext(c)
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	m := metrics.New()
	opts := []service.Option{
		service.WithMetrics(m),
		service.WithPublicURL(cfg.PublicURL),
	}
	if cfg.SharingEnabled() {
		signer, err := share.NewSigner(cfg.ShareSecret, cfg.ShareTTL)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithShareSigner(signer))
		slog.Info("Share links enabled", "ttl", cfg.ShareTTL, "public_url", cfg.PublicURL)
	} else {
		slog.Warn("Share links disabled, set SHARE_SECRET to enable")
	}
	if cfg.PublishingEnabled() {
		publisher, err := export.NewS3Publisher(cfg.S3Region, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithPublisher(publisher))
		slog.Info("Summary publishing enabled", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
	}

	router := server.NewRouter(service.NewSplitService(store, opts...), m)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.DBPath)
	}
}
