package album

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Wall - Positioned Layout Artifact
// =============================================================================

// Wall is the serialization format for a computed photo wall.
//
// A wall captures the result of laying an album out at a specific container
// width: every tile carries its final pixel position and size, so renderers
// and API clients never re-run the packing math.
//
// Fields:
//   - Width: the container width the wall was computed for
//   - RowHeight: the target row height that guided packing
//   - Margin: gap between tiles and between rows, in pixels
//   - RowCount: number of rows in the wall
//   - Height: total wall height including inter-row margins
//   - Tiles: positioned photos, in album order
//
// Tiles are denormalized with the item fields renderers need (URLs, title,
// link) so a Wall file is self-contained.
type Wall struct {
	AlbumID   string  `json:"album_id,omitempty" bson:"album_id,omitempty"`
	Width     int     `json:"width" bson:"width"`
	RowHeight int     `json:"row_height" bson:"row_height"`
	Margin    int     `json:"margin" bson:"margin"`
	RowCount  int     `json:"row_count" bson:"row_count"`
	Height    float64 `json:"height" bson:"height"`
	Tiles     []Tile  `json:"tiles" bson:"tiles"`
}

// =============================================================================
// Tile - A Positioned Photo
// =============================================================================

// Tile represents one positioned photo in a wall.
// X and Y are the tile's top-left corner relative to the wall origin.
type Tile struct {
	ItemID string  `json:"item_id" bson:"item_id"`
	Row    int     `json:"row" bson:"row"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Denormalized item fields for standalone rendering
	URL      string `json:"url,omitempty" bson:"url,omitempty"`
	ThumbURL string `json:"thumb_url,omitempty" bson:"thumb_url,omitempty"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	Link     string `json:"link,omitempty" bson:"link,omitempty"`
	Color    string `json:"color,omitempty" bson:"color,omitempty"`
}

// TilesInRow returns the tiles of the given row, in left-to-right order.
func (w *Wall) TilesInRow(row int) []Tile {
	var out []Tile
	for _, t := range w.Tiles {
		if t.Row == row {
			out = append(out, t)
		}
	}
	return out
}

// =============================================================================
// Wall Serialization API
// =============================================================================

// MarshalWall serializes a Wall to pretty-printed JSON bytes.
func MarshalWall(w Wall) ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// UnmarshalWall deserializes JSON bytes into a Wall.
// Validates that the wall has a positive container width and that tile
// row indices stay within RowCount.
func UnmarshalWall(data []byte) (Wall, error) {
	var w Wall
	if err := json.Unmarshal(data, &w); err != nil {
		return Wall{}, fmt.Errorf("unmarshal wall: %w", err)
	}

	if w.Width <= 0 {
		return Wall{}, fmt.Errorf("wall must have a positive width")
	}
	for i, t := range w.Tiles {
		if t.Row < 0 || t.Row >= w.RowCount {
			return Wall{}, fmt.Errorf("tile %d row %d out of range (rows: %d)", i, t.Row, w.RowCount)
		}
	}

	return w, nil
}

// WriteWallFile writes a Wall to a JSON file.
func WriteWallFile(w Wall, path string) error {
	data, err := MarshalWall(w)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadWallFile reads a Wall from a JSON file.
func ReadWallFile(path string) (Wall, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Wall{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalWall(data)
}
