package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration keys
const (
	DefaultGoogleBooksBaseURL = "https://www.googleapis.com/books/v1"
	DefaultDomainHint         = "manga"
	DefaultDelay              = time.Second
	DefaultDatasetteDBFile    = "./manga.db"
)

// Settings is the resolved configuration for one enrichment run
type Settings struct {
	// GoogleBooksBaseURL is the root of the book search API
	GoogleBooksBaseURL string
	// DomainHint is appended to every search query
	DomainHint string
	// HTTPTimeout of zero leaves the transport default in place
	HTTPTimeout time.Duration
	// Delay is the minimum spacing between two lookups
	Delay time.Duration
	// DatasetteEnabled controls the SQLite export of the enriched rows
	DatasetteEnabled bool
	// DatasetteDBFile is the SQLite database written when DatasetteEnabled is set
	DatasetteDBFile string
}

// SetDefaults registers the default values with viper
func SetDefaults() {
	viper.SetDefault("googlebooks.baseurl", DefaultGoogleBooksBaseURL)
	viper.SetDefault("googlebooks.hint", DefaultDomainHint)
	viper.SetDefault("googlebooks.timeout", "0s")
	viper.SetDefault("enrich.delay", DefaultDelay.String())
	viper.SetDefault("datasette.enabled", false)
	viper.SetDefault("datasette.dbfile", DefaultDatasetteDBFile)
}

// InitConfig sets defaults and reads an optional config.yaml from the working
// directory. A missing config file is not an error.
func InitConfig() error {
	SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("Config file not found, using defaults")
			return nil
		}
		return err
	}

	slog.Debug("Loaded config file", "path", viper.ConfigFileUsed())
	return nil
}

// Load resolves the current viper state into Settings
func Load() Settings {
	return Settings{
		GoogleBooksBaseURL: viper.GetString("googlebooks.baseurl"),
		DomainHint:         viper.GetString("googlebooks.hint"),
		HTTPTimeout:        parseDuration("googlebooks.timeout", 0),
		Delay:              parseDuration("enrich.delay", DefaultDelay),
		DatasetteEnabled:   viper.GetBool("datasette.enabled"),
		DatasetteDBFile:    viper.GetString("datasette.dbfile"),
	}
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration in config, using default", "key", key, "value", raw, "error", err)
		return fallback
	}
	return d
}
