package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/pipeline"
)

// scanCommand creates the scan command for collecting photos into an album.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "scan <dir|manifest.json|url>",
		Short: "Collect photos and their dimensions into an album",
		Long: `Collect photos and their dimensions into an album.

The scan command walks a directory of image files (or reads a JSON manifest
of photo URLs, local or over HTTP) and records each photo's intrinsic
dimensions. The output is an album.json file in display order, ready for
the 'layout' command.

Directory scans decode dimensions from file headers (JPEG, PNG, GIF, WebP,
BMP, TIFF); unreadable files are logged and skipped. Manifest entries
without dimensions are probed over HTTP with a local response cache, so
rescans are cheap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			return c.runScan(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", album.DefaultAlbumFilename, "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Title, "title", "", "album title")
	cmd.Flags().StringVar(&opts.Category, "category", "", "keep only photos in this category")
	cmd.Flags().IntVar(&opts.MaxItems, "max-items", 0, "cap on collected photos (0 = default)")
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "descend into subdirectories (names become categories)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-probe photos, bypassing caches")

	return cmd
}

// runScan scans the source and writes the album file.
func (c *CLI) runScan(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Prober = c.newProber()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", opts.Source))
	spinner.Start()

	a, cacheHit, err := runner.ScanWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Scan failed")
		return fmt.Errorf("scan %s: %w", opts.Source, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if a.Len() == 0 {
		printWarning("No photos found in %s", opts.Source)
		return nil
	}

	if err := album.WriteAlbumFile(a, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Scan complete")
	printFile(output)
	printStats(a.Len(), 0, cacheHit)
	printNewline()
	printNextStep("Layout", "photowall layout "+output)

	return nil
}
