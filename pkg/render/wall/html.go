package wall

import (
	"bytes"
	"fmt"
	"html"

	"github.com/olofgunnarsson/photowall/pkg/album"
)

// fallbackTileColor fills tiles that carry neither a photo URL nor their
// own placeholder color.
const fallbackTileColor = "#e0e0e0"

const pageCSS = `
    body { margin: 0; background: %s; font-family: system-ui, sans-serif; }
    .wall { position: relative; margin: 0 auto; width: %dpx; height: %.0fpx; }
    .tile { position: absolute; overflow: hidden; }
    .tile img { width: 100%%; height: 100%%; object-fit: cover; display: block; }
    .tile a { display: block; width: 100%%; height: 100%%; }`

// HTMLOptions configures the HTML sink.
type HTMLOptions struct {
	// Title is the page title. Empty means "Photo wall".
	Title string

	// Background is the page background color. Empty means white.
	Background string

	// EagerRows is the number of leading rows loaded eagerly; tiles in
	// later rows get loading="lazy". Zero means the first row only.
	EagerRows int
}

// RenderHTML renders a wall as a self-contained HTML page. Tiles link
// to their configured targets; lightbox wiring is the embedder's job.
func RenderHTML(w album.Wall, opts HTMLOptions) []byte {
	title := opts.Title
	if title == "" {
		title = "Photo wall"
	}
	background := opts.Background
	if background == "" {
		background = "#ffffff"
	}
	eagerRows := opts.EagerRows
	if eagerRows <= 0 {
		eagerRows = 1
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&buf, "<style>%s\n</style>\n", fmt.Sprintf(pageCSS, html.EscapeString(background), w.Width, w.Height))
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, `<div class="wall" data-album="%s">`+"\n", html.EscapeString(w.AlbumID))

	for _, t := range w.Tiles {
		renderHTMLTile(&buf, t, t.Row < eagerRows)
	}

	buf.WriteString("</div>\n</body>\n</html>\n")
	return buf.Bytes()
}

func renderHTMLTile(buf *bytes.Buffer, t album.Tile, eager bool) {
	fmt.Fprintf(buf, `<div class="tile" style="left:%.3fpx;top:%.3fpx;width:%.3fpx;height:%.3fpx">`,
		t.X, t.Y, t.Width, t.Height)

	if t.Link != "" {
		fmt.Fprintf(buf, `<a href="%s">`, html.EscapeString(t.Link))
	}

	src := t.ThumbURL
	if src == "" {
		src = t.URL
	}
	if src != "" {
		loading := ""
		if !eager {
			loading = ` loading="lazy"`
		}
		fmt.Fprintf(buf, `<img src="%s" alt="%s"%s>`,
			html.EscapeString(src), html.EscapeString(t.Title), loading)
	} else {
		color := t.Color
		if color == "" {
			color = fallbackTileColor
		}
		fmt.Fprintf(buf, `<div style="width:100%%;height:100%%;background:%s"></div>`,
			html.EscapeString(color))
	}

	if t.Link != "" {
		buf.WriteString("</a>")
	}
	buf.WriteString("</div>\n")
}
