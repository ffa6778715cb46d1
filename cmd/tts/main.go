package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wachiwi/gcloud-tts/pkg/config"
	"github.com/wachiwi/gcloud-tts/pkg/googletts"
	"github.com/wachiwi/gcloud-tts/pkg/logger"
	"github.com/wachiwi/gcloud-tts/pkg/tts"
)

var version = "dev"

const (
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand(cfg, dialGoogle)
	err = cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// dialGoogle connects to Google Cloud Text-to-Speech using the configured
// credentials and endpoint.
func dialGoogle(ctx context.Context, cfg *config.Config) (tts.Service, func() error, error) {
	settings := googletts.Settings{
		CredentialsFile: cfg.CredentialsFile,
		Endpoint:        cfg.Endpoint,
		QuotaProject:    cfg.QuotaProject,
	}
	client, err := googletts.New(ctx, settings.Options()...)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

func exitCode(err error) int {
	var uErr *usageError
	if tts.IsUsageError(err) || errors.As(err, &uErr) {
		return exitUsage
	}
	return exitFailure
}
