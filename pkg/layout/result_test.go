package layout

import (
	"testing"
)

// fiveLandscapes is the canonical 5-photo wall: two scaled rows of two
// plus a trailing single at target height.
func fiveLandscapes(t *testing.T) Result {
	t.Helper()
	res, err := Build(repeat(1.5, 5), 1000, Options{TargetRowHeight: 300, Margin: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return res
}

func TestRowBounds(t *testing.T) {
	res := fiveLandscapes(t)

	tests := []struct {
		name       string
		row        int
		start, end int
	}{
		{"first row", 0, 0, 2},
		{"middle row", 1, 2, 4},
		{"last row", 2, 4, 5},
		{"negative row", -1, 0, 0},
		{"beyond rows", 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := res.RowBounds(tt.row)
			if start != tt.start || end != tt.end {
				t.Errorf("RowBounds(%d) = (%d, %d), want (%d, %d)", tt.row, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestItemsThrough(t *testing.T) {
	res := fiveLandscapes(t)

	tests := []struct {
		rows int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 2},
		{2, 4},
		{3, 5},
		{10, 5},
	}

	for _, tt := range tests {
		if got := res.ItemsThrough(tt.rows); got != tt.want {
			t.Errorf("ItemsThrough(%d) = %d, want %d", tt.rows, got, tt.want)
		}
	}
}

func TestHeightThrough(t *testing.T) {
	res := fiveLandscapes(t)

	tests := []struct {
		name string
		rows int
		want float64
	}{
		{"none", 0, 0},
		{"one row", 1, 331.667},
		{"two rows with margin", 2, 668.334},
		{"all rows", 3, 973.334},
		{"beyond rows clamps", 9, 973.334},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := res.HeightThrough(tt.rows); !approx(got, tt.want) {
				t.Errorf("HeightThrough(%d) = %v, want %v", tt.rows, got, tt.want)
			}
		})
	}

	if got := res.Height(); !approx(got, 973.334) {
		t.Errorf("Height() = %v, want 973.334", got)
	}
}

func TestMaxRowLen(t *testing.T) {
	res := fiveLandscapes(t)
	if got := res.MaxRowLen(); got != 2 {
		t.Errorf("MaxRowLen() = %d, want 2", got)
	}

	empty := Result{}
	if got := empty.MaxRowLen(); got != 0 {
		t.Errorf("empty MaxRowLen() = %d, want 0", got)
	}
}

func TestPlacementEdges(t *testing.T) {
	p := Placement{X: 10, Y: 20, Width: 100, Height: 50}
	if got := p.Right(); got != 110 {
		t.Errorf("Right() = %v, want 110", got)
	}
	if got := p.Bottom(); got != 70 {
		t.Errorf("Bottom() = %v, want 70", got)
	}
}
