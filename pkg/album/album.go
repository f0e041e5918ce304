package album

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Link targets for item anchors.
const (
	TargetBlank  = "_blank"
	TargetSelf   = "_self"
	TargetParent = "_parent"
	TargetTop    = "_top"
)

// DefaultAlbumFilename is the conventional name for an album file on disk.
const DefaultAlbumFilename = "album.json"

// =============================================================================
// Item - A Single Photo
// =============================================================================

// Item is the unified photo type for all serialization contexts.
// Width and Height are the natural pixel dimensions of the full-size image;
// layout uses only their ratio, so thumbnails may be served at any scale.
type Item struct {
	ID         string         `json:"id" bson:"id"`
	Title      string         `json:"title,omitempty" bson:"title,omitempty"`
	URL        string         `json:"url,omitempty" bson:"url,omitempty"`             // Full-size image
	ThumbURL   string         `json:"thumb_url,omitempty" bson:"thumb_url,omitempty"` // Scaled-down image (defaults to URL)
	Width      int            `json:"width,omitempty" bson:"width,omitempty"`         // Natural pixel width
	Height     int            `json:"height,omitempty" bson:"height,omitempty"`       // Natural pixel height
	Link       string         `json:"link,omitempty" bson:"link,omitempty"`
	LinkTarget string         `json:"link_target,omitempty" bson:"link_target,omitempty"` // One of the Target* constants
	Color      string         `json:"color,omitempty" bson:"color,omitempty"`             // Placeholder background color
	Categories []string       `json:"categories,omitempty" bson:"categories,omitempty"`
	Meta       map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Ratio returns the aspect ratio (width divided by height) of the item.
// Items with missing or non-positive dimensions report a square ratio of 1
// so they occupy a sane slot instead of collapsing a row.
func (it *Item) Ratio() float64 {
	if it.Width <= 0 || it.Height <= 0 {
		return 1
	}
	return float64(it.Width) / float64(it.Height)
}

// Thumbnail returns the thumbnail URL if set, otherwise the full-size URL.
func (it *Item) Thumbnail() string {
	if it.ThumbURL != "" {
		return it.ThumbURL
	}
	return it.URL
}

// DisplayTitle returns the title if set, otherwise the ID.
func (it *Item) DisplayTitle() string {
	if it.Title != "" {
		return it.Title
	}
	return it.ID
}

// HasCategory returns true if the item is tagged with the given category.
func (it *Item) HasCategory(cat string) bool {
	for _, c := range it.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// =============================================================================
// Album - An Ordered Collection of Photos
// =============================================================================

// Album is the canonical serialization format for a photo collection.
// Item order is significant: walls pack photos in album order.
type Album struct {
	ID        string         `json:"id" bson:"id"`
	Title     string         `json:"title,omitempty" bson:"title,omitempty"`
	Items     []Item         `json:"items" bson:"items"`
	CreatedAt time.Time      `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Meta      map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Len returns the number of items in the album.
func (a *Album) Len() int { return len(a.Items) }

// Ratios returns the aspect ratio of every item, in album order.
// This is the input shape expected by pkg/layout.
func (a *Album) Ratios() []float64 {
	out := make([]float64, len(a.Items))
	for i := range a.Items {
		out[i] = a.Items[i].Ratio()
	}
	return out
}

// FilterByCategory returns a copy of the album containing only items
// tagged with the given category. An empty category returns all items.
func (a *Album) FilterByCategory(cat string) Album {
	if cat == "" {
		return *a
	}
	out := Album{ID: a.ID, Title: a.Title, CreatedAt: a.CreatedAt, Meta: a.Meta}
	for _, it := range a.Items {
		if it.HasCategory(cat) {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

// Validate checks the album for structural problems: duplicate or empty
// item IDs. Dimensions are not validated here; layout tolerates them.
func (a *Album) Validate() error {
	seen := make(map[string]struct{}, len(a.Items))
	for i, it := range a.Items {
		if it.ID == "" {
			return fmt.Errorf("item %d has empty id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}

// =============================================================================
// Album Serialization API
// =============================================================================

// MarshalAlbum converts an Album to pretty-printed JSON bytes.
func MarshalAlbum(a Album) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeAlbumTo(a, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalAlbum deserializes JSON bytes to an Album.
// Returns validation errors for malformed albums.
func UnmarshalAlbum(data []byte) (Album, error) {
	var a Album
	if err := json.Unmarshal(data, &a); err != nil {
		return Album{}, fmt.Errorf("unmarshal album: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Album{}, err
	}
	return a, nil
}

// WriteAlbumFile writes an Album to a JSON file.
// The file is created with 0644 permissions.
func WriteAlbumFile(a Album, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeAlbumTo(a, f)
}

// WriteAlbum writes an Album as JSON to an io.Writer.
// Use MarshalAlbum for in-memory serialization or WriteAlbumFile for files.
func WriteAlbum(a Album, w io.Writer) error {
	return writeAlbumTo(a, w)
}

// ReadAlbumFile reads a JSON file and returns the decoded Album.
// Returns validation errors for malformed albums.
func ReadAlbumFile(path string) (Album, error) {
	f, err := os.Open(path)
	if err != nil {
		return Album{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readAlbumFrom(f)
}

// ReadAlbum decodes a JSON album from an io.Reader.
// Use ReadAlbumFile for files or pass bytes.NewReader for in-memory data.
func ReadAlbum(r io.Reader) (Album, error) {
	return readAlbumFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeAlbumTo(a Album, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readAlbumFrom(r io.Reader) (Album, error) {
	var a Album
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Album{}, fmt.Errorf("decode: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Album{}, err
	}
	return a, nil
}
