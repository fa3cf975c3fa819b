// Package state stores design snapshots in SQLite so a fetched document and
// its bitmap can be inspected again without the design API.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrSnapshotNotFound is returned when no snapshot has the requested id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	NodeID    string    `json:"node_id"`
	Format    string    `json:"format"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	NodeCount int       `json:"node_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is a stored document with the bitmap rendered for it.
type Snapshot struct {
	SnapshotInfo
	Document []byte `json:"-"`
	Bitmap   []byte `json:"-"`
}

// Store persists snapshots.
type Store interface {
	SaveSnapshot(ctx context.Context, s *Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, id string) error
	Close() error
}
