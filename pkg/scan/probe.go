package scan

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"time"

	"github.com/olofgunnarsson/photowall/pkg/httputil"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const httpTimeout = 10 * time.Second

// Size holds a photo's intrinsic pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Prober fetches photo dimensions over HTTP. Only the image header is
// decoded, never the full photo. Results are cached: a URL's dimensions
// never change, so repeated scans cost one local read.
//
// All methods are safe for concurrent use.
type Prober struct {
	http  *http.Client
	cache *httputil.Cache
}

// NewProber creates a prober with the given cache. A nil cache disables
// caching.
func NewProber(cache *httputil.Cache) *Prober {
	return &Prober{
		http:  &http.Client{Timeout: httpTimeout},
		cache: cache,
	}
}

// ProbeURL fetches the dimensions of the photo at rawURL.
//
// If refresh is true, the cache is bypassed and a fresh request is made.
//
// Returns:
//   - [ErrNotFound] if the server responds 404
//   - [ErrNetwork] for other HTTP failures
//   - [ErrNotImage] if the response is not a decodable image
func (p *Prober) ProbeURL(ctx context.Context, rawURL string, refresh bool) (Size, error) {
	var size Size
	err := p.cached(ctx, "probe:"+rawURL, refresh, &size, func() error {
		return p.fetch(ctx, rawURL, &size)
	})
	return size, err
}

// cached retrieves a value from cache or executes fetch and caches the result.
func (p *Prober) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if p.cache != nil && !refresh {
		if ok, _ := p.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if p.cache != nil {
		_ = p.cache.Set(key, v)
	}
	return nil
}

func (p *Prober) fetch(ctx context.Context, rawURL string, size *Size) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotImage, rawURL)
	}
	size.Width, size.Height = cfg.Width, cfg.Height
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// ProbeFile reads the dimensions of a local image file.
//
// Returns [ErrNotFound] if the file doesn't exist and [ErrNotImage] if it
// cannot be decoded as an image.
func ProbeFile(path string) (Size, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Size{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %s", ErrNotImage, path)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
