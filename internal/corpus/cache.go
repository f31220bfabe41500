// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/ps-search/pkg/types"
)

// Loader produces the full record corpus. It is called at most once per Cache.
type Loader func(ctx context.Context) ([]types.Record, error)

// Cache holds the corpus for the lifetime of the process. The first call to
// Records runs the Loader; every later call returns the same slice, or the
// same error if the load failed. Callers must treat the slice as read-only.
type Cache struct {
	load   Loader
	logger *zap.Logger

	once    sync.Once
	loaded  atomic.Bool
	records []types.Record
	err     error
}

// NewCache returns a Cache that loads lazily from load.
func NewCache(load Loader, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{load: load, logger: logger}
}

// Static returns a Cache over a fixed record slice.
func Static(records []types.Record) *Cache {
	return NewCache(func(context.Context) ([]types.Record, error) {
		return records, nil
	}, nil)
}

// Records returns the loaded corpus, loading it on first use. The load
// ignores cancellation of ctx.
func (c *Cache) Records(ctx context.Context) ([]types.Record, error) {
	c.once.Do(func() {
		start := time.Now()
		c.records, c.err = c.load(context.WithoutCancel(ctx))
		c.loaded.Store(true)
		if c.err != nil {
			c.logger.Error("corpus load failed", zap.Error(c.err))
			return
		}
		c.logger.Info("corpus loaded",
			zap.Int("records", len(c.records)),
			zap.Duration("duration", time.Since(start)))
	})
	return c.records, c.err
}

// Loaded reports whether a load has finished, and the number of records
// it produced. It never triggers a load.
func (c *Cache) Loaded() (bool, int) {
	if !c.loaded.Load() {
		return false, 0
	}
	return true, len(c.records)
}

// CSVLoader returns a Loader that reads path with LoadCSVFile and logs the
// load report.
func CSVLoader(path string, logger *zap.Logger) Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(context.Context) ([]types.Record, error) {
		records, report, err := LoadCSVFile(path)
		if err != nil {
			return nil, err
		}
		LogReport(logger, path, report)
		return records, nil
	}
}

// LogReport writes the notable parts of a LoadReport to logger.
func LogReport(logger *zap.Logger, source string, report LoadReport) {
	logger.Debug("corpus rows read",
		zap.String("source", source),
		zap.Int("rows", report.Rows),
		zap.Int("duplicates", report.Duplicates))
	if len(report.MissingColumns) > 0 {
		logger.Warn("corpus columns missing, loading as empty",
			zap.String("source", source),
			zap.Strings("columns", report.MissingColumns))
	}
	for title, fields := range report.DelimiterFields {
		logger.Warn("record field contains the \" - \" delimiter",
			zap.String("source", source),
			zap.String("title", title),
			zap.Strings("fields", fields))
	}
}
