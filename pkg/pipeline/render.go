package pipeline

import (
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
	"github.com/olofgunnarsson/photowall/pkg/render/wall"
)

// RenderFromWall renders a wall in every requested format and returns the
// artifacts keyed by format.
func RenderFromWall(w album.Wall, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(w, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderFormat dispatches one format to its sink.
func renderFormat(w album.Wall, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		return wall.RenderHTML(w, wall.HTMLOptions{
			Title:      opts.PageTitle,
			Background: opts.Background,
			EagerRows:  opts.EagerRows,
		}), nil
	case FormatSVG:
		return wall.RenderSVG(w, wall.SVGOptions{
			Captions:    opts.Captions,
			EmbedImages: opts.EmbedImages,
		}), nil
	case FormatJSON:
		return wall.RenderJSON(w)
	default:
		return nil, ValidateFormat(format)
	}
}
