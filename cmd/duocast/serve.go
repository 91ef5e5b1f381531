package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/nadzzz/duocast/docs"
	"github.com/nadzzz/duocast/internal/access"
	"github.com/nadzzz/duocast/internal/health"
	"github.com/nadzzz/duocast/internal/source"
	"github.com/nadzzz/duocast/internal/transport"
	grpctransport "github.com/nadzzz/duocast/internal/transport/grpc"
	httptransport "github.com/nadzzz/duocast/internal/transport/http"
)

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the podcast API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configFile)
		},
	}
}

func serve(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	slog.Info("duocast starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	backend := transport.Backend{Service: svc, Sessions: source.NewStore()}

	checker := access.NewChecker(cfg.Access.AuthorizedTenants)
	if checker.Enabled() {
		slog.Info("tenant restriction enabled", "tenants", len(cfg.Access.AuthorizedTenants))
	}

	var transports []transport.Transport
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port,
			httptransport.WithAccess(checker),
			httptransport.WithExtractTimeout(cfg.Extract.Timeout),
			httptransport.WithMaxUpload(cfg.Extract.MaxUploadSize),
		))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if len(transports) == 0 {
		return errors.New("no transports enabled: enable at least one in config")
	}

	var (
		failedMu sync.Mutex
		failed   []string
	)
	healthServer := health.New(cfg.Server.HealthPort, version)
	healthServer.AddCheck("transports", func(context.Context) error {
		failedMu.Lock()
		defer failedMu.Unlock()
		if len(failed) > 0 {
			return fmt.Errorf("stopped: %s", strings.Join(failed, ", "))
		}
		return nil
	})
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, backend); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
				failedMu.Lock()
				failed = append(failed, t.Name())
				failedMu.Unlock()
			}
		}(t)
	}

	healthServer.SetReady(true)
	slog.Info("duocast ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort)

	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")
	healthServer.SetReady(false)

	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("duocast stopped")
	return nil
}
