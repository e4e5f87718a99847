package data

import (
	"context"
	"embed"
	"os"
)

// Rooms is the default room set shipped with the binary.
//
//go:embed rooms/*.yaml
var Rooms embed.FS

// RoomsDir is the directory of the default room set inside Rooms.
const RoomsDir = "rooms"

// Load loads the room set from dir on disk, or the embedded default set when dir is empty.
func Load(ctx context.Context, dir string, opts Options) (*Catalog, error) {
	if dir == "" {
		return LoadCatalog(ctx, Rooms, RoomsDir, opts)
	}
	return LoadCatalog(ctx, os.DirFS(dir), ".", opts)
}
