package scan

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// ManifestScanner builds an album from an album.json manifest, either a
// local file or an http(s) URL. Items that already carry dimensions are
// used as-is; the rest are probed so the layout engine gets real aspect
// ratios.
type ManifestScanner struct {
	prober *Prober
}

// NewManifestScanner creates a manifest scanner. A nil prober disables
// probing; items without dimensions then fall back to square tiles.
func NewManifestScanner(prober *Prober) *ManifestScanner {
	return &ManifestScanner{prober: prober}
}

// Name returns the scanner identifier.
func (s *ManifestScanner) Name() string { return "manifest" }

// Scan reads the manifest at source and returns the completed album.
// Probe failures are logged and leave the item's dimensions at zero;
// they never abort the scan.
func (s *ManifestScanner) Scan(ctx context.Context, source string, opts Options) (album.Album, error) {
	opts = opts.WithDefaults()

	a, err := s.read(ctx, source)
	if err != nil {
		return album.Album{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if len(a.Items) > opts.MaxItems {
		a.Items = a.Items[:opts.MaxItems]
	}

	for i := range a.Items {
		it := &a.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if it.Width > 0 && it.Height > 0 {
			continue
		}
		if s.prober == nil || it.URL == "" {
			continue
		}
		size, err := s.prober.ProbeURL(ctx, it.URL, opts.Refresh)
		if err != nil {
			opts.Logger.Warn("probe failed, keeping unknown dimensions", "url", it.URL, "err", err)
			continue
		}
		it.Width, it.Height = size.Width, size.Height
	}

	if opts.Category != "" {
		a = a.FilterByCategory(opts.Category)
	}
	opts.Logger.Info("scanned manifest", "source", source, "items", len(a.Items))
	return a, nil
}

// read loads the manifest from a file path or URL.
func (s *ManifestScanner) read(ctx context.Context, source string) (album.Album, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return album.ReadAlbumFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return album.Album{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return album.Album{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return album.Album{}, fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	if resp.StatusCode != http.StatusOK {
		return album.Album{}, fmt.Errorf("%w: status %d fetching %s", ErrNetwork, resp.StatusCode, source)
	}
	return album.ReadAlbum(resp.Body)
}
