package wall

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// SVGOptions configures the SVG sink.
type SVGOptions struct {
	// Captions draws each tile's title under its top-left corner.
	Captions bool

	// EmbedImages references photo URLs with <image> elements instead of
	// drawing colored rectangles. Off by default so contact sheets stay
	// small and render without network access.
	EmbedImages bool
}

const captionFontSize = 12.0

// RenderSVG renders a wall as a contact-sheet SVG: one element per tile
// with row-accurate geometry, in album order.
func RenderSVG(w album.Wall, opts SVGOptions) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %.1f" width="%d" height="%.0f">`+"\n",
		w.Width, w.Height, w.Width, w.Height)

	for _, t := range w.Tiles {
		renderSVGTile(&buf, t, opts)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGTile(buf *bytes.Buffer, t album.Tile, opts SVGOptions) {
	src := t.ThumbURL
	if src == "" {
		src = t.URL
	}

	if opts.EmbedImages && src != "" {
		fmt.Fprintf(buf, `  <image x="%.3f" y="%.3f" width="%.3f" height="%.3f" href="%s" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			t.X, t.Y, t.Width, t.Height, xmlEscape(src))
	} else {
		color := t.Color
		if color == "" {
			color = fallbackTileColor
		}
		fmt.Fprintf(buf, `  <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s" stroke="#ffffff" stroke-width="0.5"/>`+"\n",
			t.X, t.Y, t.Width, t.Height, xmlEscape(color))
	}

	if opts.Captions && t.Title != "" {
		fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="%.0f" fill="#333333">%s</text>`+"\n",
			t.X+2, t.Y+captionFontSize+2, captionFontSize, xmlEscape(t.Title))
	}
}

// xmlEscape escapes a string for use in SVG attribute and text content.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
