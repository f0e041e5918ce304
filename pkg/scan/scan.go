package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

const (
	// DefaultMaxItems caps how many photos a single scan collects.
	DefaultMaxItems = 5000

	// DefaultCacheTTL is the default probe cache duration.
	DefaultCacheTTL = 24 * time.Hour
)

// Sentinel errors for scanning operations.
var (
	// ErrNotFound is returned when a photo or manifest doesn't exist.
	ErrNotFound = errors.New("photo not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrNotImage is returned when a file or response is not a decodable image.
	ErrNotImage = errors.New("not a decodable image")
)

// Options configures album scanning.
type Options struct {
	// MaxItems caps the number of photos collected. Zero means
	// DefaultMaxItems.
	MaxItems int

	// Recursive descends into subdirectories. Subdirectory names become
	// photo categories.
	Recursive bool

	// Category keeps only photos carrying this category. Empty keeps all.
	Category string

	// Refresh bypasses the probe cache.
	Refresh bool

	// Logger receives scan progress and warnings. Defaults to log.Default().
	Logger *log.Logger
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

// Scanner builds an album from a photo source.
type Scanner interface {
	// Name returns the scanner identifier (e.g. "dir", "manifest").
	Name() string

	// Scan reads the source and returns the scanned album.
	Scan(ctx context.Context, source string, opts Options) (album.Album, error)
}

// Detect picks the scanner suited to source: directories get the
// directory scanner, .json files and http(s) URLs get the manifest
// scanner.
func Detect(source string, prober *Prober) (Scanner, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewManifestScanner(prober), nil
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	if info.IsDir() {
		return NewDirScanner(), nil
	}
	if strings.HasSuffix(source, ".json") {
		return NewManifestScanner(prober), nil
	}
	return nil, fmt.Errorf("unsupported source %q (want a directory, album.json, or URL)", source)
}
