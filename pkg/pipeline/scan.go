package pipeline

import (
	"context"
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/scan"
)

// Scan collects photos from opts.Source into an album. The source kind is
// detected automatically: directories get the directory scanner, album
// files and http(s) URLs get the manifest scanner.
func Scan(ctx context.Context, opts Options) (album.Album, error) {
	if err := opts.ValidateForScan(); err != nil {
		return album.Album{}, err
	}

	scanner, err := scan.Detect(opts.Source, opts.Prober)
	if err != nil {
		return album.Album{}, err
	}

	opts.Logger.Debug("scanning source", "scanner", scanner.Name(), "source", opts.Source)

	a, err := scanner.Scan(ctx, opts.Source, opts.ScanOptions())
	if err != nil {
		return album.Album{}, fmt.Errorf("scan %s: %w", opts.Source, err)
	}
	if opts.Title != "" {
		a.Title = opts.Title
	}
	return a, nil
}
