// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ps-search CLI: an HTTP search
// service over a corpus of problem statements, plus offline search and
// corpus management commands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/internal/logging"
	"github.com/pdiddy/ps-search/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger is built from log.level and log.format before any command runs.
	logger = zap.NewNop()
)

// secretDefault returns fallback if set, otherwise the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets.Get(key)
}

// rootCmd is the base command for the ps-search CLI.
var rootCmd = &cobra.Command{
	Use:   "ps-search",
	Short: "Keyword search over a corpus of problem statements",
	Long: `ps-search matches free text against problem statements (author, title,
statement, contributor) loaded from a CSV file or a SQLite corpus, and ranks
matches by keyword overlap.

Run "ps-search serve" for the HTTP endpoint, "ps-search search" to query the
corpus directly, and "ps-search corpus" to import or export it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		logger = l

		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Int("count", len(s)))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ps-search.yaml or ~/.config/ps-search/ps-search.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().String("source", "csv", "corpus source: csv or sqlite")
	rootCmd.PersistentFlags().String("csv", "./ps.csv", "corpus CSV file (Author, Title, Problem Statement, Contributor)")
	rootCmd.PersistentFlags().String("db", "data/ps.db", "corpus SQLite database")

	bindFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	bindFlag("corpus.source", rootCmd.PersistentFlags().Lookup("source"))
	bindFlag("corpus.csv_path", rootCmd.PersistentFlags().Lookup("csv"))
	bindFlag("corpus.db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ps-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ps-search"))
		}
	}

	viper.SetEnvPrefix("PS_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
