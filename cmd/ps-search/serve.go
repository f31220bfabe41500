// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/internal/secrets"
	"github.com/pdiddy/ps-search/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search endpoint over HTTP",
	Long: `Serve starts an HTTP server with POST /search and GET /healthz. The corpus
is loaded once (at startup with --preload, otherwise on the first request) and
shared read-only by all requests. SIGINT or SIGTERM shuts the server down
gracefully.

If the secret file ps-search-api-key exists, /search requires that key in an
X-API-Key or Authorization: Bearer header.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":5000", "listen address")
	serveCmd.Flags().Float64("min-percentage", 20, "default match threshold when a request omits one")
	serveCmd.Flags().Bool("preload", true, "load the corpus before accepting requests")
	serveCmd.Flags().String("api-key", "", "required API key (default: .secrets/ps-search-api-key)")

	bindFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	bindFlag("search.min_percentage", serveCmd.Flags().Lookup("min-percentage"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	cfg.Server.APIKey = secretDefault(secrets.APIKey, apiKey)

	cache, cleanup, err := openCorpus(cfg.Corpus, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if preload, _ := cmd.Flags().GetBool("preload"); preload {
		if _, err := cache.Records(ctx); err != nil {
			return err
		}
	}

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("corpus_source", string(cfg.Corpus.Source)),
		zap.Float64("min_percentage", cfg.Search.MinPercentage),
		zap.Bool("api_key", cfg.Server.APIKey != ""))

	return server.New(cache, cfg.Server, cfg.Search, logger).Run(ctx)
}
