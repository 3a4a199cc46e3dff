// Package store persists current-game records so a restarted server
// can resume its live games. Only the latest position is kept per
// game; move history is out of scope for every implementation.
package store

import (
	"context"
	"errors"
	"time"

	"janggi/internal/janggi"
)

// ErrNotFound is returned by Get for ids the store does not hold.
var ErrNotFound = errors.New("record not found")

// Record is the persisted shape of one game. The encoded position
// carries the board and the side to move.
type Record struct {
	ID        string
	Position  string
	Status    janggi.GameStatus
	Ply       int
	UpdatedAt time.Time
}

// Store is a keyed record store. Save overwrites; Delete of an
// unknown id is not an error.
type Store interface {
	Save(ctx context.Context, r Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
