// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/internal/corpus"
	"github.com/pdiddy/ps-search/internal/store"
	"github.com/pdiddy/ps-search/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the problem-statement corpus (import, export)",
	Long: `Corpus moves problem statements between the CSV source and the SQLite
corpus database used by "serve --source sqlite".`,
}

// --- import subcommand ---

var corpusImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV file into the corpus database",
	Long: `Import reads the CSV file given by --csv (columns Author, Title, Problem
Statement, Contributor), drops duplicate rows, and inserts the records into
the database given by --db. Records already in the database are skipped.

Fields containing the " - " delimiter are reported; they are stored intact.`,
	RunE: runCorpusImport,
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	csvPath := viper.GetString("corpus.csv_path")
	records, report, err := corpus.LoadCSVFile(csvPath)
	if err != nil {
		return err
	}
	corpus.LogReport(logger, csvPath, report)

	fmt.Fprintf(os.Stdout, "read %d rows from %s (%d duplicate rows dropped)\n",
		report.Rows, csvPath, report.Duplicates)
	if len(report.DelimiterFields) > 0 {
		titles := make([]string, 0, len(report.DelimiterFields))
		for title := range report.DelimiterFields {
			titles = append(titles, title)
		}
		sort.Strings(titles)
		for _, title := range titles {
			fmt.Fprintf(os.Stdout, "warning: %q has \" - \" in %v\n", title, report.DelimiterFields[title])
		}
	}

	st, err := store.NewStore(types.StoreConfig{DBPath: viper.GetString("corpus.db_path")})
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.Import(context.Background(), records, os.Stdout)
	if err != nil {
		return err
	}
	logger.Info("corpus imported",
		zap.String("db", st.Path()),
		zap.Int("inserted", summary.Inserted),
		zap.Int("duplicates", summary.Duplicates))
	return nil
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus database to YAML or JSON",
	RunE:  runCorpusExport,
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "data/corpus." + format
	}

	st, err := store.NewStore(types.StoreConfig{DBPath: viper.GetString("corpus.db_path")})
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	switch format {
	case "yaml":
		err = st.ExportYAML(ctx, output)
	case "json":
		err = st.ExportJSON(ctx, output)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	n, err := st.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d records to %s\n", n, output)
	return nil
}

func init() {
	corpusExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	corpusExportCmd.Flags().String("output", "", "output file (default: data/corpus.<format>)")

	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	rootCmd.AddCommand(corpusCmd)
}
