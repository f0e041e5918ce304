package pipeline

import (
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/layout"
)

// BuildWall packs an album into justified rows at opts.Width and returns
// the positioned wall.
func BuildWall(a album.Album, opts Options) (album.Wall, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return album.Wall{}, err
	}

	res, err := layout.Build(a.Ratios(), opts.Width, opts.Layout)
	if err != nil {
		return album.Wall{}, fmt.Errorf("pack %d photos into width %d: %w", a.Len(), opts.Width, err)
	}

	wall, err := res.Export(a)
	if err != nil {
		return album.Wall{}, fmt.Errorf("export wall: %w", err)
	}
	return wall, nil
}
