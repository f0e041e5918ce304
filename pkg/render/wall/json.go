package wall

import "github.com/olofgunnarsson/photowall/pkg/album"

// RenderJSON renders a wall as its canonical JSON file. Kept as a sink
// so the CLI and server treat "json" like any other output format.
func RenderJSON(w album.Wall) ([]byte, error) {
	return album.MarshalWall(w)
}
