package layout

// =============================================================================
// Placement - A Positioned Photo
// =============================================================================

// Placement holds the computed geometry of a single photo.
// All coordinates are in pixels with the origin at the wall's top-left
// corner; Y increases downward.
type Placement struct {
	Index  int     // Position in the input sequence
	Row    int     // Zero-based row assignment
	X, Y   float64 // Top-left corner
	Width  float64
	Height float64
	Last   bool // True for the placement that closes its row
}

// Right returns the x coordinate of the placement's right edge.
func (p Placement) Right() float64 { return p.X + p.Width }

// Bottom returns the y coordinate of the placement's bottom edge.
func (p Placement) Bottom() float64 { return p.Y + p.Height }

// =============================================================================
// Result - A Computed Wall Layout
// =============================================================================

// Result is the outcome of packing a photo sequence at a container width.
// Placements appear in input order; row assignments are non-decreasing.
type Result struct {
	Width      int     // Container width the layout was computed for
	Options    Options // Options the layout was computed with (defaults applied)
	Placements []Placement
	RowHeights []float64 // Final height of each row, top to bottom
}

// RowCount returns the number of rows in the layout.
func (r *Result) RowCount() int { return len(r.RowHeights) }

// Len returns the number of placed photos.
func (r *Result) Len() int { return len(r.Placements) }

// MaxRowLen returns the photo count of the fullest row, or 0 for an
// empty layout. Pagination uses it to size page requests.
func (r *Result) MaxRowLen() int {
	counts := make([]int, r.RowCount())
	for _, p := range r.Placements {
		counts[p.Row]++
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return max
}

// RowBounds returns the half-open placement range [start, end) of the
// given row. Out-of-range rows yield (0, 0).
func (r *Result) RowBounds(row int) (start, end int) {
	if row < 0 || row >= r.RowCount() {
		return 0, 0
	}
	for i, p := range r.Placements {
		if p.Row == row {
			start = i
			break
		}
	}
	end = start
	for end < len(r.Placements) && r.Placements[end].Row == row {
		end++
	}
	return start, end
}

// ItemsThrough returns how many photos the first n rows contain.
// Values of n at or beyond the row count cover the whole layout.
func (r *Result) ItemsThrough(rows int) int {
	if rows <= 0 {
		return 0
	}
	if rows >= r.RowCount() {
		return len(r.Placements)
	}
	_, end := r.RowBounds(rows - 1)
	return end
}

// HeightThrough returns the height in pixels of the first n rows,
// including the margins between them but no trailing margin.
// Values of n at or beyond the row count cover the whole layout.
func (r *Result) HeightThrough(rows int) float64 {
	if rows <= 0 || r.RowCount() == 0 {
		return 0
	}
	if rows > r.RowCount() {
		rows = r.RowCount()
	}

	sum := 0.0
	for _, h := range r.RowHeights[:rows] {
		sum += h
	}
	sum += float64(r.Options.Margin) * float64(rows-1)
	return roundTo(sum, r.Options.Precision)
}

// Height returns the total wall height in pixels.
func (r *Result) Height() float64 {
	return r.HeightThrough(r.RowCount())
}
