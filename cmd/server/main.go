package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/archetype-tools/proteusview/internal/api"
	"github.com/archetype-tools/proteusview/internal/config"
	"github.com/archetype-tools/proteusview/internal/i18n"
	"github.com/archetype-tools/proteusview/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load label dictionaries: built-ins first, then overrides.
	bundle, err := i18n.NewBundle(cfg.DefaultLanguage)
	if err != nil {
		log.Error("failed to load label dictionaries", "error", err)
		os.Exit(1)
	}
	if cfg.LabelsDir != "" {
		if err := bundle.LoadDir(cfg.LabelsDir); err != nil {
			log.Error("failed to load label directory", "dir", cfg.LabelsDir, "error", err)
			os.Exit(1)
		}
		if cfg.WatchLabels {
			go func() {
				if err := i18n.Watch(ctx, bundle, cfg.LabelsDir, log); err != nil {
					log.Error("label watcher stopped", "error", err)
				}
			}()
		}
	}

	renderer := render.New()

	// Initialize HTTP server. The PDF converter is deployment-specific;
	// none ships with the binary, so the endpoint reports unavailable.
	srv := api.NewServer(renderer, bundle, nil, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting proteusview", "port", cfg.Port, "languages", bundle.Languages())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
