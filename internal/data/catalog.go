package data

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/room"
)

// Options are the load-time parameters shared by all rooms.
type Options struct {
	TileSize float64
	// PlayerW and PlayerH size the box used to validate spawns.
	PlayerW       float64
	PlayerH       float64
	DoorClearance float64
	// Workers bounds concurrent file parsing; <= 0 means 4.
	Workers int
}

// Catalog is a validated, versioned set of room definitions.
// Immutable after LoadCatalog: safe for concurrent Load calls.
type Catalog struct {
	rooms   map[string]*room.Def
	ids     []string
	version string
}

// LoadCatalog parses every *.yaml file in dir concurrently and validates the set
// as a whole. Any error is fatal: no room of a failing set is usable.
func LoadCatalog(ctx context.Context, fsys fs.FS, dir string, opts Options) (*Catalog, error) {
	if opts.TileSize <= 0 {
		opts.TileSize = tilemap.DefaultTileSize
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing room files in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no room files in %s", dir)
	}
	slices.Sort(files)

	raws := make([][]byte, len(files))
	defs := make([]*room.Def, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("reading room file %s: %w", name, err)
			}
			def, err := parseRoom(path.Base(name), raw, opts)
			if err != nil {
				return err
			}
			raws[i], defs[i] = raw, def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Catalog{rooms: make(map[string]*room.Def, len(defs))}
	for i, def := range defs {
		if _, ok := c.rooms[def.ID]; ok {
			return nil, loadErr(def.ID, "file "+path.Base(files[i]), ErrDuplicateRoom)
		}
		c.rooms[def.ID] = def
		c.ids = append(c.ids, def.ID)
	}
	slices.Sort(c.ids)

	if err := c.validateDoors(); err != nil {
		return nil, err
	}

	c.version = fingerprint(files, raws)
	slog.Info("room catalog loaded",
		"dir", dir,
		"rooms", len(c.ids),
		"version", c.version[:12])
	return c, nil
}

// validateDoors checks that every door pair is mutually consistent.
func (c *Catalog) validateDoors() error {
	var errs []error
	for _, id := range c.ids {
		def := c.rooms[id]
		for _, d := range def.Doors {
			ref := "door " + d.ID
			target, ok := c.rooms[d.TargetRoom]
			if !ok {
				errs = append(errs, loadErr(id, ref, fmt.Errorf("%w: %s", ErrUnknownRoom, d.TargetRoom)))
				continue
			}
			back, ok := target.Door(d.TargetDoor)
			if !ok {
				errs = append(errs, loadErr(id, ref, fmt.Errorf("%w: %s.%s", ErrMissingDoor, d.TargetRoom, d.TargetDoor)))
				continue
			}
			if back.TargetRoom != id || back.TargetDoor != d.ID {
				errs = append(errs, loadErr(id, ref, fmt.Errorf("%w: %s.%s leads to %s.%s",
					ErrAsymmetricDoor, d.TargetRoom, d.TargetDoor, back.TargetRoom, back.TargetDoor)))
			}
		}
	}
	return errors.Join(errs...)
}

// fingerprint is the BLAKE2b-256 of the sorted file names and contents.
func fingerprint(files []string, raws [][]byte) string {
	h, _ := blake2b.New256(nil)
	for i, name := range files {
		h.Write([]byte(path.Base(name)))
		h.Write([]byte{0})
		h.Write(raws[i])
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Load returns the definition of room id. It implements room.Source.
func (c *Catalog) Load(ctx context.Context, id string) (*room.Def, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	def, ok := c.rooms[id]
	if !ok {
		return nil, loadErr(id, "", ErrUnknownRoom)
	}
	return def, nil
}

// IDs returns the sorted room ids.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.ids)
}

// Len returns the number of rooms.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// Version returns the asset fingerprint of the loaded files.
func (c *Catalog) Version() string {
	return c.version
}
