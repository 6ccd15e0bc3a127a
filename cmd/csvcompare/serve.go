package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/csvcompare/internal/compare"
	"github.com/JonMunkholm/csvcompare/internal/web"
	"github.com/JonMunkholm/csvcompare/internal/web/templates"
)

func runServe(ctx context.Context, file1, file2 string) error {
	a, err := setup(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	server := web.NewServer(a.cfg, a.service, a.csv, templates.AppInfo{
		Name:    "CSV Compare",
		Version: version,
	})
	server.Prefill(file1, file2)

	if file1 != "" && file2 != "" {
		if _, err := a.service.Compare(ctx, file1, file2); err != nil {
			slog.Warn("initial comparison failed", "error", err, "message", compare.FormatUserError(err))
		}
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := a.service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for comparisons to complete", "active", status.Active)
			if err := a.service.WaitForComparisons(shutdownCtx); err != nil {
				slog.Warn("comparisons did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
