// Package layout packs photos into justified rows.
//
// # Overview
//
// Given the aspect ratios of a photo sequence and a container width, [Build]
// assigns every photo to a row and computes its exact pixel geometry. The
// result is a complete [Result] containing all information needed for
// rendering or incremental disclosure:
//
//   - Placements (x, y, width, height coordinates per photo)
//   - Row heights (the final height of every packed row)
//   - Helpers for row ranges and cumulative heights
//
// # Row Packing
//
// Photos are taken in input order and measured at the target row height,
// so a photo's natural width is rowHeight × aspectRatio. A row closes
// before the photo whose natural width (plus margins) would push the row
// past the container; that photo opens the next row. A photo too wide for
// the container occupies a row alone.
//
// # Justification
//
// Every closed row is then scaled uniformly so its photos plus margins span
// the container width exactly. Rows closed by overflow scale up (they were
// under the container width when they closed), so final row heights sit at
// or above the target. A lone oversized photo scales down instead. The last
// row is the exception: it keeps the target height rather than stretching,
// unless [Options.JustifyLastRow] is set.
//
// # Rounding
//
// Coordinates are rounded to [Options.Precision] decimal places. Widths are
// derived from rounded cumulative edges rather than rounded individually,
// so rounding error never accumulates across a row and every justified row
// spans the container to within one rounding step.
//
// # Building a Layout
//
// Use [Build] with aspect ratios and a container width:
//
//	res, err := layout.Build(a.Ratios(), 1200, layout.Options{
//	    TargetRowHeight: 300,
//	    Margin:          5,
//	})
//
// Zero-valued options take their defaults ([DefaultTargetRowHeight],
// [DefaultPrecision], [DefaultAspectRatio]). An explicit zero margin is
// honored; only negative margins are rejected.
//
// # Integration
//
// The layout package sits between the album model and rendering:
//
//	album.Album → layout.Build → Result.Export → album.Wall → render/wall sinks
//
// The gallery controller in pkg/gallery consumes the Result directly to
// reveal rows incrementally.
package layout
