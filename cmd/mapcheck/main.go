// Room set validator: loads a room directory the way the simulation does and
// reports every room it contains.
//
// Usage:
//
//	go run ./cmd/mapcheck                 # check the embedded default rooms
//	go run ./cmd/mapcheck path/to/rooms   # check a room directory on disk
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/udisondev/cavern/internal/config"
	"github.com/udisondev/cavern/internal/data"
	"github.com/udisondev/cavern/internal/world"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	dir := ""
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := check(context.Background(), os.Stdout, dir); err != nil {
		fmt.Fprintln(os.Stderr, "mapcheck:", err)
		var le *data.LoadError
		if errors.As(err, &le) {
			fmt.Fprintf(os.Stderr, "  room=%s ref=%q\n", le.Room, le.Ref)
		}
		os.Exit(1)
	}
}

// check loads the room set in dir (the embedded set when empty) with the
// tuning of the active config file and prints one line per room.
func check(ctx context.Context, w io.Writer, dir string) error {
	cfg, err := config.LoadGame(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	catalog, err := data.Load(ctx, dir, world.CatalogOptions(cfg))
	if err != nil {
		return err
	}

	for _, id := range catalog.IDs() {
		def, err := catalog.Load(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-16s %3dx%-3d doors=%d enemies=%d breakables=%d pickups=%d",
			def.ID, def.Map.Width(), def.Map.Height(),
			len(def.Doors), len(def.Enemies), len(def.Breakables), len(def.Pickups))
		if def.PlayerStart != nil {
			fmt.Fprint(w, " start")
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d rooms, version %s\n", catalog.Len(), catalog.Version())
	return nil
}
