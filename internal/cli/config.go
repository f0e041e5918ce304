package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/olofgunnarsson/photowall/pkg/layout"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
)

// configFilename is the conventional name of the config file.
const configFilename = "photowall.toml"

// Config is the photowall.toml file. It is loaded once at startup into an
// immutable value; command flags override individual fields per run, the
// loaded value itself is never mutated.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Page   PageConfig   `toml:"page"`
	Serve  ServeConfig  `toml:"serve"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig holds the [layout] section.
type LayoutConfig struct {
	Width          int     `toml:"width"`
	RowHeight      int     `toml:"row_height"`
	Margin         int     `toml:"margin"`
	Precision      int     `toml:"precision"`
	DefaultRatio   float64 `toml:"default_ratio"`
	JustifyLastRow bool    `toml:"justify_last_row"`
}

// PageConfig holds the [page] section for interactive disclosure.
type PageConfig struct {
	// RowsPerPage fixes the page size in rows; 0 derives it from the
	// viewport.
	RowsPerPage int `toml:"rows_per_page"`

	// MinRowsAtStart floors the derived page size.
	MinRowsAtStart int `toml:"min_rows_at_start"`
}

// ServeConfig holds the [serve] section.
type ServeConfig struct {
	Addr       string `toml:"addr"`
	Store      string `toml:"store"` // memory, sqlite, or mongo
	SQLitePath string `toml:"sqlite_path"`
	MongoURI   string `toml:"mongo_uri"`
	RedisAddr  string `toml:"redis_addr"`
}

// CacheConfig holds the [cache] section.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	TTLHours int    `toml:"ttl_hours"`
}

// TTL returns the configured cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Layout: LayoutConfig{
			Width:        pipeline.DefaultWidth,
			RowHeight:    layout.DefaultTargetRowHeight,
			Margin:       layout.DefaultMargin,
			Precision:    layout.DefaultPrecision,
			DefaultRatio: layout.DefaultAspectRatio,
		},
		Page: PageConfig{
			MinRowsAtStart: 2,
		},
		Serve: ServeConfig{
			Addr:       ":8080",
			Store:      "memory",
			SQLitePath: "photowall.db",
		},
		Cache: CacheConfig{
			TTLHours: 24,
		},
	}
}

// LayoutOptions converts the [layout] section into layout options.
func (c *Config) LayoutOptions() layout.Options {
	return layout.Options{
		TargetRowHeight: c.Layout.RowHeight,
		Margin:          c.Layout.Margin,
		Precision:       c.Layout.Precision,
		DefaultRatio:    c.Layout.DefaultRatio,
		JustifyLastRow:  c.Layout.JustifyLastRow,
	}
}

// LoadConfig reads the config file at path, or searches the default
// locations when path is empty: ./photowall.toml, then
// $XDG_CONFIG_HOME/photowall/photowall.toml, then
// ~/.config/photowall/photowall.toml. A missing file is not an error;
// defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		found, ok := findConfig()
		if !ok {
			return cfg, nil
		}
		path = found
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// findConfig returns the first config file found in the search path.
func findConfig() (string, bool) {
	candidates := []string{configFilename}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		candidates = append(candidates, filepath.Join(configHome, appName, configFilename))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", appName, configFilename))
	}

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
