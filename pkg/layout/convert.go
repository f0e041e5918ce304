package layout

import (
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// Export converts a computed layout to the serialization format.
//
// Use this when you need to serialize the wall for:
//   - JSON file output (via album.WriteWallFile)
//   - API responses
//   - Caching
//
// The album supplies the item fields tiles are denormalized with. It must
// hold exactly the items the layout was computed from, in the same order.
func (r Result) Export(a album.Album) (album.Wall, error) {
	if len(a.Items) != len(r.Placements) {
		return album.Wall{}, fmt.Errorf("album has %d items but layout has %d placements", len(a.Items), len(r.Placements))
	}

	w := album.Wall{
		AlbumID:   a.ID,
		Width:     r.Width,
		RowHeight: r.Options.TargetRowHeight,
		Margin:    r.Options.Margin,
		RowCount:  r.RowCount(),
		Height:    r.Height(),
		Tiles:     make([]album.Tile, len(r.Placements)),
	}

	for i, p := range r.Placements {
		it := a.Items[p.Index]
		w.Tiles[i] = album.Tile{
			ItemID:   it.ID,
			Row:      p.Row,
			X:        p.X,
			Y:        p.Y,
			Width:    p.Width,
			Height:   p.Height,
			URL:      it.URL,
			ThumbURL: it.Thumbnail(),
			Title:    it.Title,
			Link:     it.Link,
			Color:    it.Color,
		}
	}

	return w, nil
}

// Parse reconstructs a layout result from a serialized wall.
//
// Use this when rendering from a previously saved wall:
//   - Loading from JSON file (via album.ReadWallFile)
//   - Receiving from API/cache
//
// Returns an error if the wall has no positive width or a tile references
// a row outside the wall's row count.
func Parse(w album.Wall) (Result, error) {
	if w.Width <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidWidth, w.Width)
	}

	opts := Options{
		TargetRowHeight: w.RowHeight,
		Margin:          w.Margin,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}

	r := Result{
		Width:      w.Width,
		Options:    opts,
		Placements: make([]Placement, len(w.Tiles)),
		RowHeights: make([]float64, w.RowCount),
	}

	for i, t := range w.Tiles {
		if t.Row < 0 || t.Row >= w.RowCount {
			return Result{}, fmt.Errorf("tile %d row %d out of range (rows: %d)", i, t.Row, w.RowCount)
		}
		r.Placements[i] = Placement{
			Index:  i,
			Row:    t.Row,
			X:      t.X,
			Y:      t.Y,
			Width:  t.Width,
			Height: t.Height,
		}
		r.RowHeights[t.Row] = t.Height
	}

	// Recover the row-closing flags lost in serialization.
	for i := range r.Placements {
		last := i == len(r.Placements)-1 || r.Placements[i+1].Row != r.Placements[i].Row
		r.Placements[i].Last = last
	}

	return r, nil
}
