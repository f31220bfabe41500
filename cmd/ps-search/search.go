// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ps-search/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Search the corpus directly, without a server",
	Long: `Search extracts keywords from the input text, scores every problem
statement by keyword overlap, keeps those strictly above --min-percentage,
and prints them sorted by title.

Use --save to write the query and results to a YAML file, and --rerun to
repeat a saved query against the current corpus.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Float64("min-percentage", 0, "match threshold (default: search.min_percentage, 20)")
	searchCmd.Flags().Int("page", 1, "page number (accepted, not applied)")
	searchCmd.Flags().Int("results-per-page", 10, "results per page (accepted, not applied)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save", "", "write the query and results to this YAML file")
	searchCmd.Flags().String("rerun", "", "rerun the query stored in this YAML file")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	inputText, opts, err := searchInput(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cache, cleanup, err := openCorpus(cfg.Corpus, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := cache.Records(context.Background())
	if err != nil {
		return err
	}

	results := search.Search(inputText, records, opts)

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, inputText, opts, len(records), results); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", path)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(results, os.Stdout)
	}
	search.FormatTable(results, os.Stdout)
	return nil
}

// searchInput resolves the query text and options from a saved query file
// or from args and flags.
func searchInput(cmd *cobra.Command, args []string) (string, search.Options, error) {
	if path, _ := cmd.Flags().GetString("rerun"); path != "" {
		qf, err := search.ReadQueryFile(path)
		if err != nil {
			return "", search.Options{}, err
		}
		return qf.Query.InputText, qf.Query.Options(), nil
	}

	if len(args) == 0 {
		return "", search.Options{}, fmt.Errorf("provide search text or --rerun FILE")
	}

	opts := search.DefaultOptions()
	opts.MinPercentage = viper.GetFloat64("search.min_percentage")
	if cmd.Flags().Changed("min-percentage") {
		opts.MinPercentage, _ = cmd.Flags().GetFloat64("min-percentage")
	}
	opts.Page, _ = cmd.Flags().GetInt("page")
	opts.ResultsPerPage, _ = cmd.Flags().GetInt("results-per-page")
	return strings.Join(args, " "), opts, nil
}
