package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hyperjump/internai/internal/config"
	"github.com/hyperjump/internai/internal/stub"
	"github.com/hyperjump/internai/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) watchCmd() *cobra.Command {
	var syncExisting bool

	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Submit dated journal files as they are written",
		Long: "Watch directories (default watch.directories from config) and submit each file named\n" +
			"YYYY-MM-DD*.ext as the daily log for that date. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = a.cfg.Watch.Directories
			}
			if len(dirs) == 0 {
				return errors.New("no directories to watch: pass them as arguments or set watch.directories")
			}
			return a.watch(cmd.Context(), dirs, syncExisting)
		},
	}

	cmd.Flags().BoolVar(&syncExisting, "sync", true, "submit files already present when the watch starts")
	return cmd
}

func (a *app) watch(ctx context.Context, dirs []string, syncExisting bool) error {
	var mu sync.Mutex
	in := watcher.NewIngester(a.mentor,
		watcher.WithIngestLogger(a.logger),
		watcher.WithSettleDelay(a.cfg.Logs.ResetDelay),
		watcher.WithResults(func(r watcher.Result) {
			mu.Lock()
			defer mu.Unlock()
			if err := a.printer.Ingested(r); err != nil {
				a.logger.Warn("failed to print result", zap.Error(err))
			}
		}),
	)
	defer in.Close()

	w := watcher.New(dirs, a.cfg.Watch.Extensions, a.cfg.Watch.RecursiveOrDefault(), in.Ingest,
		watcher.WithLogger(a.logger))
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()
	a.logger.Info("watching journal directories", zap.Strings("dirs", w.Directories()))

	if syncExisting {
		w.SyncExisting()
	}
	<-ctx.Done()
	a.logger.Info("Shutting down...")
	return nil
}

func (a *app) stubCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve an in-memory backend for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Stub
			if host != "" {
				cfg.Host = host
			}
			if port != 0 {
				cfg.Port = port
			}
			return a.serveStub(cmd.Context(), &cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	return cmd
}

func (a *app) serveStub(ctx context.Context, cfg *config.StubConfig) error {
	srv := stub.NewServer(stub.NewStore(), cfg, a.logger, version)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.out, "internai version %s\n", version)
			return err
		},
	}
}
