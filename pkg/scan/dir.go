package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// imageExtensions are the file extensions the directory scanner considers.
// Anything else is skipped without opening the file.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// DirScanner builds an album from a directory of image files.
//
// Files are visited in lexical order, so the album's display order is
// stable across rescans. With Options.Recursive, subdirectory names become
// item categories ("photos/travel/a.jpg" is tagged "travel").
type DirScanner struct{}

// NewDirScanner creates a directory scanner.
func NewDirScanner() *DirScanner {
	return &DirScanner{}
}

// Name returns the scanner identifier.
func (s *DirScanner) Name() string { return "dir" }

// Scan walks dir and returns an album of every decodable image found.
// Files that are not images, or whose header cannot be decoded, are
// logged at debug level and skipped. The walk stops early once
// opts.MaxItems photos are collected or ctx is cancelled.
func (s *DirScanner) Scan(ctx context.Context, dir string, opts Options) (album.Album, error) {
	opts = opts.WithDefaults()

	a := album.Album{
		ID:    uuid.NewString(),
		Title: filepath.Base(filepath.Clean(dir)),
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			opts.Logger.Warn("skipping unreadable entry", "path", path, "err", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !opts.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if len(a.Items) >= opts.MaxItems {
			return fs.SkipAll
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		size, err := ProbeFile(path)
		if err != nil {
			opts.Logger.Debug("not a decodable image", "path", path, "err", err)
			return nil
		}

		it := album.Item{
			ID:     uuid.NewString(),
			Title:  titleFromFilename(path),
			URL:    path,
			Width:  size.Width,
			Height: size.Height,
		}
		if cat := categoryFor(dir, path); cat != "" {
			it.Categories = []string{cat}
		}
		a.Items = append(a.Items, it)
		return nil
	})
	if err != nil {
		return album.Album{}, err
	}

	if opts.Category != "" {
		a = a.FilterByCategory(opts.Category)
	}
	opts.Logger.Info("scanned directory", "dir", dir, "items", len(a.Items))
	return a, nil
}

// titleFromFilename derives a display title from a file path: the base
// name without its extension.
func titleFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// categoryFor returns the first path element between root and the file,
// or "" for files directly inside root.
func categoryFor(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return ""
}
