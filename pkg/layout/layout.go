package layout

import (
	"errors"
	"fmt"
	"math"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Gallery
// =============================================================================

const (
	// DefaultTargetRowHeight is the default target row height in pixels.
	DefaultTargetRowHeight = 400

	// DefaultMargin is the default gap between tiles and rows in pixels.
	DefaultMargin = 3

	// DefaultPrecision is the default number of decimal places kept in
	// computed coordinates.
	DefaultPrecision = 3

	// DefaultAspectRatio is the aspect ratio assumed for photos whose
	// dimensions are not yet known, used by capacity estimation.
	DefaultAspectRatio = 1.5
)

// Sentinel errors returned by [Build] and [EstimateRowCapacity].
var (
	// ErrInvalidWidth is returned when the container width is not positive.
	ErrInvalidWidth = errors.New("container width must be positive")

	// ErrInvalidOptions is returned when option validation fails.
	ErrInvalidOptions = errors.New("invalid layout options")
)

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options contains all configuration for row packing.
// This struct supports JSON serialization for API requests and cache keys.
type Options struct {
	// TargetRowHeight is the row height packing aims for, in pixels.
	// Justified rows end up at or above it. Zero means DefaultTargetRowHeight.
	TargetRowHeight int `json:"row_height,omitempty"`

	// Margin is the gap between tiles within a row and between rows,
	// in pixels. Zero is a valid value (tiles touch); negative is rejected.
	Margin int `json:"margin,omitempty"`

	// Precision is the number of decimal places kept in coordinates.
	// Zero means DefaultPrecision.
	Precision int `json:"precision,omitempty"`

	// DefaultRatio is the aspect ratio assumed by EstimateRowCapacity
	// before any photo dimensions are known. Zero means DefaultAspectRatio.
	DefaultRatio float64 `json:"default_ratio,omitempty"`

	// JustifyLastRow stretches the final row to span the container like
	// every other row. Off by default: a trailing partial row keeps the
	// target height and leaves the remaining width empty.
	JustifyLastRow bool `json:"justify_last_row,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option sanity and fills unset fields.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.TargetRowHeight < 0 {
		return fmt.Errorf("%w: target row height must be non-negative, got %d", ErrInvalidOptions, o.TargetRowHeight)
	}
	if o.Margin < 0 {
		return fmt.Errorf("%w: margin must be non-negative, got %d", ErrInvalidOptions, o.Margin)
	}
	if o.Precision < 0 {
		return fmt.Errorf("%w: precision must be non-negative, got %d", ErrInvalidOptions, o.Precision)
	}
	if o.DefaultRatio < 0 {
		return fmt.Errorf("%w: default ratio must be non-negative, got %v", ErrInvalidOptions, o.DefaultRatio)
	}
	if o.TargetRowHeight == 0 {
		o.TargetRowHeight = DefaultTargetRowHeight
	}
	if o.Precision == 0 {
		o.Precision = DefaultPrecision
	}
	if o.DefaultRatio == 0 {
		o.DefaultRatio = DefaultAspectRatio
	}
	o.validated = true
	return nil
}

// =============================================================================
// Build - Justified Row Packing
// =============================================================================

// Build packs a photo sequence into justified rows.
//
// The ratios slice holds the aspect ratio (width / height) of every photo,
// in display order. Non-positive ratios are treated as square so one bad
// record never breaks the wall. An empty sequence yields an empty Result.
//
// Packing is greedy: photos join the current row at the target height until
// the next photo would push the row's natural width past the container.
// Each closed row is then scaled uniformly to span the container exactly;
// the last row keeps the target height unless opts.JustifyLastRow is set or
// it holds a single photo wider than the container.
func Build(ratios []float64, containerWidth int, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	if containerWidth <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidWidth, containerWidth)
	}

	res := Result{
		Width:   containerWidth,
		Options: opts,
	}
	if len(ratios) == 0 {
		return res, nil
	}

	rows := packRows(ratios, containerWidth, opts)

	res.Placements = make([]Placement, 0, len(ratios))
	res.RowHeights = make([]float64, 0, len(rows))

	h := float64(opts.TargetRowHeight)
	m := float64(opts.Margin)
	w := float64(containerWidth)
	y := 0.0

	for ri, rw := range rows {
		count := rw.end - rw.start
		avail := w - m*float64(count-1)

		// The exact height that makes the row span avail.
		exact := avail / rw.ratioSum
		lastRow := ri == len(rows)-1
		if lastRow && !opts.JustifyLastRow && exact > h {
			exact = h
		}
		rowHeight := roundTo(exact, opts.Precision)

		// Widths come from rounded cumulative edges so error cannot
		// accumulate across the row.
		cum := 0.0
		prevEdge := 0.0
		for i := rw.start; i < rw.end; i++ {
			cum += exact * ratioOrSquare(ratios[i])
			edge := roundTo(cum, opts.Precision)
			res.Placements = append(res.Placements, Placement{
				Index:  i,
				Row:    ri,
				X:      roundTo(prevEdge+m*float64(i-rw.start), opts.Precision),
				Y:      y,
				Width:  roundTo(edge-prevEdge, opts.Precision),
				Height: rowHeight,
				Last:   i == rw.end-1,
			})
			prevEdge = edge
		}

		res.RowHeights = append(res.RowHeights, rowHeight)
		y = roundTo(y+rowHeight+m, opts.Precision)
	}

	return res, nil
}

// EstimateRowCapacity predicts how many photos fit in one row before any
// dimensions are known, assuming opts.DefaultRatio for every photo.
// The estimate never drops below 1.
func EstimateRowCapacity(containerWidth int, opts Options) int {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 1
	}
	if containerWidth <= 0 {
		return 1
	}

	perPhoto := float64(opts.TargetRowHeight)*opts.DefaultRatio + float64(opts.Margin)
	if perPhoto <= 0 {
		return 1
	}

	n := int(math.Floor((float64(containerWidth) + float64(opts.Margin)) / perPhoto))
	if n < 1 {
		return 1
	}
	return n
}

// =============================================================================
// Internal Implementation
// =============================================================================

// rowSpan is a half-open placement range [start, end) forming one row.
type rowSpan struct {
	start, end int
	ratioSum   float64
}

// packRows splits the sequence into rows. A row closes before the photo
// whose natural width at the target height would overflow the container.
func packRows(ratios []float64, containerWidth int, opts Options) []rowSpan {
	h := float64(opts.TargetRowHeight)
	m := float64(opts.Margin)
	w := float64(containerWidth)

	rows := make([]rowSpan, 0, 1)
	cur := rowSpan{start: 0}

	for i := range ratios {
		r := ratioOrSquare(ratios[i])
		if count := i - cur.start; count > 0 {
			// Natural width of the row if this photo joined it.
			occupied := h*(cur.ratioSum+r) + m*float64(count)
			if occupied > w {
				cur.end = i
				rows = append(rows, cur)
				cur = rowSpan{start: i}
			}
		}
		cur.ratioSum += r
	}

	cur.end = len(ratios)
	return append(rows, cur)
}

// ratioOrSquare maps unknown or broken ratios to a square tile.
func ratioOrSquare(r float64) float64 {
	if r <= 0 {
		return 1
	}
	return r
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}
