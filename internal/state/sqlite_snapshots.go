package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveSnapshot stores s. An empty ID is assigned a new UUID and a zero
// CreatedAt is set to now.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if snap.ID == "" {
		snap.ID = generateID()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if snap.Format == "" {
		snap.Format = "png"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots
		(id, name, source, node_id, format, document, bitmap, created_at, width, height, node_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		snap.ID, snap.Name, snap.Source, snap.NodeID, snap.Format,
		snap.Document, snap.Bitmap, snap.CreatedAt.UnixMilli(),
		snap.Width, snap.Height, snap.NodeCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves a snapshot with its payload.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	snap := &Snapshot{}
	var created int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, node_id, format, width, height, node_count, created_at, document, bitmap
		FROM snapshots WHERE id = ?
	`, id).Scan(
		&snap.ID, &snap.Name, &snap.Source, &snap.NodeID, &snap.Format,
		&snap.Width, &snap.Height, &snap.NodeCount, &created,
		&snap.Document, &snap.Bitmap,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	snap.CreatedAt = time.UnixMilli(created).UTC()
	return snap, nil
}

// ListSnapshots returns all snapshots, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, node_id, format, width, height, node_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Name, &info.Source, &info.NodeID, &info.Format,
			&info.Width, &info.Height, &info.NodeCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		info.CreatedAt = time.UnixMilli(created).UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return infos, nil
}

// DeleteSnapshot removes a snapshot.
func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}
