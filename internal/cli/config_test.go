package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olofgunnarsson/photowall/pkg/layout"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.Width != 1200 {
		t.Errorf("Layout.Width = %d, want 1200", cfg.Layout.Width)
	}
	if cfg.Layout.RowHeight != layout.DefaultTargetRowHeight {
		t.Errorf("Layout.RowHeight = %d, want %d", cfg.Layout.RowHeight, layout.DefaultTargetRowHeight)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want :8080", cfg.Serve.Addr)
	}
	if cfg.Serve.Store != "memory" {
		t.Errorf("Serve.Store = %q, want memory", cfg.Serve.Store)
	}
	if cfg.Page.MinRowsAtStart != 2 {
		t.Errorf("Page.MinRowsAtStart = %d, want 2", cfg.Page.MinRowsAtStart)
	}
}

func TestCacheConfigTTL(t *testing.T) {
	tests := []struct {
		name  string
		hours int
		want  time.Duration
	}{
		{name: "configured", hours: 2, want: 2 * time.Hour},
		{name: "zero defaults to a day", hours: 0, want: 24 * time.Hour},
		{name: "negative defaults to a day", hours: -5, want: 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CacheConfig{TTLHours: tt.hours}
			if got := cfg.TTL(); got != tt.want {
				t.Errorf("TTL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.RowHeight = 250
	cfg.Layout.Margin = 12
	cfg.Layout.JustifyLastRow = true

	opts := cfg.LayoutOptions()
	if opts.TargetRowHeight != 250 {
		t.Errorf("TargetRowHeight = %d, want 250", opts.TargetRowHeight)
	}
	if opts.Margin != 12 {
		t.Errorf("Margin = %d, want 12", opts.Margin)
	}
	if !opts.JustifyLastRow {
		t.Error("JustifyLastRow should carry over")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photowall.toml")
	content := `
[layout]
width = 900
row_height = 250

[page]
rows_per_page = 3

[serve]
addr = ":9999"
store = "sqlite"

[cache]
ttl_hours = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Layout.Width != 900 {
		t.Errorf("Layout.Width = %d, want 900", cfg.Layout.Width)
	}
	if cfg.Layout.RowHeight != 250 {
		t.Errorf("Layout.RowHeight = %d, want 250", cfg.Layout.RowHeight)
	}
	if cfg.Page.RowsPerPage != 3 {
		t.Errorf("Page.RowsPerPage = %d, want 3", cfg.Page.RowsPerPage)
	}
	if cfg.Serve.Addr != ":9999" {
		t.Errorf("Serve.Addr = %q, want :9999", cfg.Serve.Addr)
	}
	if cfg.Cache.TTL() != 2*time.Hour {
		t.Errorf("Cache.TTL() = %v, want 2h", cfg.Cache.TTL())
	}

	// Sections absent from the file keep their defaults.
	if cfg.Layout.Margin != layout.DefaultMargin {
		t.Errorf("Layout.Margin = %d, want default %d", cfg.Layout.Margin, layout.DefaultMargin)
	}
}

func TestLoadConfigMissingSearchPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	def := DefaultConfig()
	if cfg.Layout.Width != def.Layout.Width {
		t.Errorf("missing config should yield defaults, got width %d", cfg.Layout.Width)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("LoadConfig() with an explicit missing path should error")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photowall.toml")
	if err := os.WriteFile(path, []byte("[layout\nwidth ="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject invalid TOML")
	}
}
