package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
)

// renderCommand creates the render command for generating wall artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [wall.json]",
		Short: "Render a wall as HTML, SVG, or JSON",
		Long: `Render a wall as HTML, SVG, or JSON.

The render command takes a wall.json file (produced by 'layout') and writes
one artifact per requested format:

  html  a self-contained page with absolutely positioned, lazy-loading
        photo tiles
  svg   a contact sheet with one element per tile (colored rectangles by
        default, --embed-images for real photos)
  json  the wall file itself, for API parity

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output basename (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "comma-separated formats: html (default), svg, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Render flags
	cmd.Flags().StringVar(&opts.PageTitle, "page-title", "", "HTML page title (default: album title)")
	cmd.Flags().StringVar(&opts.Background, "background", "", "HTML page background color")
	cmd.Flags().IntVar(&opts.EagerRows, "eager-rows", 0, "rows loaded eagerly before lazy-loading kicks in")
	cmd.Flags().BoolVar(&opts.Captions, "captions", false, "draw photo titles in the SVG")
	cmd.Flags().BoolVar(&opts.EmbedImages, "embed-images", false, "reference photo URLs in the SVG")

	return cmd
}

// runRender loads the wall, renders the requested formats, and writes one
// file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	w, err := album.ReadWallFile(input)
	if err != nil {
		return fmt.Errorf("load wall %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, w, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render wall: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(len(w.Tiles), w.RowCount, cacheHit)

	return nil
}
