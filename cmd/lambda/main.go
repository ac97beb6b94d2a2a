// Package main is the entry point for the property translator Lambda function.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pricofy/property-translator/internal/config"
	"github.com/pricofy/property-translator/internal/grok"
	"github.com/pricofy/property-translator/internal/handler"
	"github.com/pricofy/property-translator/internal/store"
	"github.com/pricofy/property-translator/internal/translator"
)

var svc *translator.Service

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

	ai := grok.New(cfg.XAIAPIKey, cfg.XAIBaseURL, cfg.XAIModel)
	svc = translator.New(st, ai, cfg.FuzzyMatch, log)

	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup)
	}

	// Parse the request and delegate to the handler
	var req handler.Request
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	return handler.Handle(ctx, svc, req)
}
