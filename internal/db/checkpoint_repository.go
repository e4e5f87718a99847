package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/cavern/internal/world"
)

// CheckpointRepository stores one current-room checkpoint per slot.
type CheckpointRepository struct {
	pool *pgxpool.Pool
}

// NewCheckpointRepository creates a repository on the pool.
func NewCheckpointRepository(pool *pgxpool.Pool) *CheckpointRepository {
	return &CheckpointRepository{pool: pool}
}

// Save upserts the checkpoint of slot.
func (r *CheckpointRepository) Save(ctx context.Context, slot string, cp world.Checkpoint) error {
	state, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encoding checkpoint %q: %w", slot, err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO checkpoints (slot, room, asset_version, tick, state, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (slot) DO UPDATE SET
		   room = EXCLUDED.room,
		   asset_version = EXCLUDED.asset_version,
		   tick = EXCLUDED.tick,
		   state = EXCLUDED.state,
		   saved_at = EXCLUDED.saved_at`,
		slot, cp.Room, cp.Version, int64(cp.Tick), state, cp.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("saving checkpoint %q: %w", slot, err)
	}
	return nil
}

// Load returns the checkpoint of slot.
// Returns nil, nil if the slot is empty.
func (r *CheckpointRepository) Load(ctx context.Context, slot string) (*world.Checkpoint, error) {
	var state []byte
	err := r.pool.QueryRow(ctx,
		`SELECT state FROM checkpoints WHERE slot = $1`, slot,
	).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading checkpoint %q: %w", slot, err)
	}

	var cp world.Checkpoint
	if err := json.Unmarshal(state, &cp); err != nil {
		return nil, fmt.Errorf("decoding checkpoint %q: %w", slot, err)
	}
	return &cp, nil
}

// Delete removes the checkpoint of slot. Deleting an empty slot is not an error.
func (r *CheckpointRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM checkpoints WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("deleting checkpoint %q: %w", slot, err)
	}
	return nil
}

// Slots returns the saved slot names, most recent first.
func (r *CheckpointRepository) Slots(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT slot FROM checkpoints ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	slots, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	return slots, nil
}
