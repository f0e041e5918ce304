package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/olofgunnarsson/photowall/pkg/buildinfo"
	"github.com/olofgunnarsson/photowall/pkg/cache"
	"github.com/olofgunnarsson/photowall/pkg/httputil"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
	"github.com/olofgunnarsson/photowall/pkg/scan"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "photowall"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Photowall lays out photo collections as justified walls",
		Long:         `Photowall is a CLI tool for packing photo collections into justified rows - every row scaled to exactly fill the container width at roughly a target height - and publishing the result as HTML, SVG, JSON, an HTTP gallery, or an interactive terminal browser.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./photowall.toml)")

	// Register all subcommands
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache, c.Config.Cache.Dir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool, configured string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := configured
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newProber creates the dimension prober used by manifest scans, backed by
// a JSON file cache so rescans don't re-probe unchanged photos.
func (c *CLI) newProber() *scan.Prober {
	dir, err := cacheDir()
	if err != nil {
		return scan.NewProber(nil)
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "probe"), c.Config.Cache.TTL())
	if err != nil {
		return scan.NewProber(nil)
	}
	return scan.NewProber(hc)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/photowall/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the loaded configuration.
// Command flags override these afterwards.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Width:  c.Config.Layout.Width,
		Layout: c.Config.LayoutOptions(),
	}
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	return strings.Split(s, ",")
}
