// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ps-search/internal/client"
	"github.com/pdiddy/ps-search/internal/search"
	"github.com/pdiddy/ps-search/internal/secrets"
	"github.com/pdiddy/ps-search/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [text...]",
	Short: "Send a search to a running ps-search server",
	Long: `Query posts the input text to a running server's /search endpoint and
prints the ranked results. Busy replies (429, 503) are retried with backoff.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("server", "http://localhost:5000", "server base URL")
	queryCmd.Flags().Float64("min-percentage", 0, "match threshold (default: server's)")
	queryCmd.Flags().Duration("timeout", 30*time.Second, "request timeout")
	queryCmd.Flags().Int("max-retries", 0, "retries on 429/503 (0 = default)")
	queryCmd.Flags().String("api-key", "", "API key (default: .secrets/ps-search-api-key)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide search text")
	}

	serverURL, _ := cmd.Flags().GetString("server")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	apiKey, _ := cmd.Flags().GetString("api-key")

	req := types.SearchRequest{InputText: strings.Join(args, " ")}
	if cmd.Flags().Changed("min-percentage") {
		v, _ := cmd.Flags().GetFloat64("min-percentage")
		req.MinPercentage = &v
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := client.New(serverURL,
		client.WithAPIKey(secretDefault(secrets.APIKey, apiKey)),
		client.WithMaxRetries(maxRetries),
		client.WithLogger(logger))
	resp, err := c.Search(ctx, req)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(resp.Results, os.Stdout)
	}
	search.FormatTable(resp.Results, os.Stdout)
	return nil
}
