package layout_test

import (
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/layout"
)

func ExampleBuild() {
	// Three landscape photos in a 1000px container with 300px target rows.
	ratios := []float64{1.5, 1.5, 1.5}

	res, err := layout.Build(ratios, 1000, layout.Options{
		TargetRowHeight: 300,
		Margin:          5,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Two photos fill the first row; it scales up to span the container.
	// The trailing photo keeps the target height.
	fmt.Printf("rows: %d\n", res.RowCount())
	fmt.Printf("row 0 height: %.3f\n", res.RowHeights[0])
	for _, p := range res.Placements {
		fmt.Printf("photo %d: row %d at (%.1f, %.3f) size %.1fx%.3f\n",
			p.Index, p.Row, p.X, p.Y, p.Width, p.Height)
	}
	// Output:
	// rows: 2
	// row 0 height: 331.667
	// photo 0: row 0 at (0.0, 0.000) size 497.5x331.667
	// photo 1: row 0 at (502.5, 0.000) size 497.5x331.667
	// photo 2: row 1 at (0.0, 336.667) size 450.0x300.000
}

func ExampleResult_Export() {
	a := album.Album{
		ID: "demo",
		Items: []album.Item{
			{ID: "a", URL: "https://example.com/a.jpg", Width: 600, Height: 400},
			{ID: "b", URL: "https://example.com/b.jpg", Width: 600, Height: 400},
		},
	}

	res, err := layout.Build(a.Ratios(), 1000, layout.Options{
		TargetRowHeight: 300,
		Margin:          5,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	wall, err := res.Export(a)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("album:", wall.AlbumID)
	fmt.Println("tiles:", len(wall.Tiles))
	fmt.Printf("first tile: %s at %.1f,%.1f\n", wall.Tiles[0].ItemID, wall.Tiles[0].X, wall.Tiles[0].Y)
	// Output:
	// album: demo
	// tiles: 2
	// first tile: a at 0.0,0.0
}

func ExampleEstimateRowCapacity() {
	// Before any photo dimensions are known, estimate how many photos a
	// row will hold assuming the default 3:2 aspect ratio.
	n := layout.EstimateRowCapacity(1000, layout.Options{
		TargetRowHeight: 300,
		Margin:          5,
	})
	fmt.Println("photos per row:", n)
	// Output:
	// photos per row: 2
}
