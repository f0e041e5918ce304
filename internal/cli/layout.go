package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
)

// layoutCommand creates the layout command for packing an album into rows.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [album.json]",
		Short: "Pack an album into justified rows at a container width",
		Long: `Pack an album into justified rows at a container width.

The layout command takes an album.json file (produced by 'scan') and packs
its photos into rows scaled to exactly fill the container width at roughly
the target row height. The output is a wall.json file with the final pixel
position and size of every photo, ready for the 'render' command or the
serve API.

The last row is not stretched to fill the width unless --justify-last-row
is set, since an album may still grow.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			applyLayoutFlags(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.wall.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Layout flags
	registerLayoutFlags(cmd)

	return cmd
}

// registerLayoutFlags declares the flags shared by layout-running commands.
func registerLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "container width in pixels")
	cmd.Flags().Int("row-height", 0, "target row height in pixels")
	cmd.Flags().Int("margin", -1, "gap between photos and rows in pixels")
	cmd.Flags().Int("precision", 0, "decimal places kept in coordinates")
	cmd.Flags().Bool("justify-last-row", false, "stretch the final row to fill the width")
}

// applyLayoutFlags overrides config-seeded options with explicitly set flags.
func applyLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("width") {
		opts.Width, _ = cmd.Flags().GetInt("width")
	}
	if cmd.Flags().Changed("row-height") {
		opts.Layout.TargetRowHeight, _ = cmd.Flags().GetInt("row-height")
	}
	if cmd.Flags().Changed("margin") {
		opts.Layout.Margin, _ = cmd.Flags().GetInt("margin")
	}
	if cmd.Flags().Changed("precision") {
		opts.Layout.Precision, _ = cmd.Flags().GetInt("precision")
	}
	if cmd.Flags().Changed("justify-last-row") {
		opts.Layout.JustifyLastRow, _ = cmd.Flags().GetBool("justify-last-row")
	}
}

// runLayout loads the album, packs the wall, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	a, err := album.ReadAlbumFile(input)
	if err != nil {
		return fmt.Errorf("load album %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Packing %d photos into width %d...", a.Len(), opts.Width))
	spinner.Start()

	w, cacheHit, err := runner.BuildWallWithCacheInfo(ctx, a, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute wall: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".wall.json"
	}

	if err := album.WriteWallFile(w, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(w.Tiles), w.RowCount, cacheHit)
	printNewline()
	printNextStep("Render", "photowall render "+outputPath)

	return nil
}
