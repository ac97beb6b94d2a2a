// Command server runs the property translator HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricofy/property-translator/internal/config"
	"github.com/pricofy/property-translator/internal/grok"
	"github.com/pricofy/property-translator/internal/server"
	"github.com/pricofy/property-translator/internal/store"
	"github.com/pricofy/property-translator/internal/translator"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open translation store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	ai := grok.New(cfg.XAIAPIKey, cfg.XAIBaseURL, cfg.XAIModel)
	if !ai.Available() {
		log.Warn("no xAI API key configured, AI layer will use fallback translations")
	}

	svc := translator.New(st, ai, cfg.FuzzyMatch, log)
	srv := server.New(svc, cfg.Port)

	go func() {
		log.Info("translator API listening", "port", cfg.Port, "db", cfg.DBPath)
		if err := srv.Start(); err != nil {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
