// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/internal/corpus"
	"github.com/pdiddy/ps-search/internal/store"
	"github.com/pdiddy/ps-search/pkg/types"
)

func init() {
	viper.SetDefault("server.addr", ":5000")
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("corpus.source", string(types.SourceCSV))
	viper.SetDefault("corpus.csv_path", "./ps.csv")
	viper.SetDefault("corpus.db_path", "data/ps.db")
	viper.SetDefault("search.min_percentage", types.DefaultMinPercentage)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// bindFlag binds a viper key to a flag; a missing flag is a programming error.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// loadConfig reads the merged config file, environment, and flag values.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// openCorpus returns a lazily loading cache over the configured source and
// a cleanup function to run when the cache is no longer needed.
func openCorpus(cfg types.CorpusConfig, logger *zap.Logger) (*corpus.Cache, func(), error) {
	switch cfg.Source {
	case types.SourceCSV, "":
		return corpus.NewCache(corpus.CSVLoader(cfg.CSVPath, logger), logger), func() {}, nil
	case types.SourceSQLite:
		st, err := store.NewStore(types.StoreConfig{DBPath: cfg.DBPath})
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := st.Close(); err != nil {
				logger.Warn("closing corpus database", zap.Error(err))
			}
		}
		return corpus.NewCache(st.Records, logger), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported corpus source %q: use csv or sqlite", cfg.Source)
	}
}
