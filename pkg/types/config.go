package types

import "time"

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadTimeout bounds reading a request, including the body.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`

	// ShutdownTimeout bounds graceful shutdown after a signal (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// APIKey, when non-empty, is required on every /search request.
	APIKey string `json:"-" yaml:"-" mapstructure:"-"`
}

// CorpusSource selects where problem statements are loaded from.
type CorpusSource string

const (
	SourceCSV    CorpusSource = "csv"
	SourceSQLite CorpusSource = "sqlite"
)

// CorpusConfig holds settings for loading the record corpus.
type CorpusConfig struct {
	// Source is csv or sqlite.
	Source CorpusSource `json:"source" yaml:"source" mapstructure:"source"`

	// CSVPath is the tabular file with Author, Title, Problem Statement,
	// and Contributor columns (default "./ps.csv").
	CSVPath string `json:"csv_path" yaml:"csv_path" mapstructure:"csv_path"`

	// DBPath is the SQLite database used when Source is sqlite.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// StoreConfig holds settings for the SQLite corpus store.
type StoreConfig struct {
	// DBPath is the database file; its parent directory is created on open.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// SearchConfig holds defaults for the search core.
type SearchConfig struct {
	// MinPercentage is the threshold used when a request omits one (default 20).
	MinPercentage float64 `json:"min_percentage" yaml:"min_percentage" mapstructure:"min_percentage"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from the config file, environment, and flags.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Corpus CorpusConfig `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
