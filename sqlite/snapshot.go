package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bisscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bisscrape.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements bisscrape.SnapshotService using SQLite.
// Characters are stored as their JSON encoding.
type SnapshotService struct {
	db  *DB
	now func() time.Time
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// hashContent computes the xxHash of data as a 16 digit hex string.
func hashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// CreateSnapshot stores a snapshot, assigning its ID, content hash and
// storage time.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *bisscrape.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(snap.Character)
	if err != nil {
		return fmt.Errorf("failed to encode character: %w", err)
	}

	snap.ID = uuid.New().String()
	snap.ContentHash = hashContent(data)
	snap.StoredAt = s.now().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, run_id, name, url, data, content_hash, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.RunID, snap.Character.Name, snap.Character.URL, string(data),
		snap.ContentHash, snap.StoredAt.Format(time.RFC3339))

	return err
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter bisscrape.SnapshotFilter) ([]*bisscrape.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, data, content_hash, stored_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY stored_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []*bisscrape.Snapshot{}
	for rows.Next() {
		var snap bisscrape.Snapshot
		var data, storedAt string

		if err := rows.Scan(&snap.ID, &snap.RunID, &data, &snap.ContentHash, &storedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(data), &snap.Character); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", snap.ID, err)
		}

		snap.StoredAt, err = parseRFC3339(storedAt, "stored_at")
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, &snap)
	}

	return snapshots, rows.Err()
}
