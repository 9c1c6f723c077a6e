package bisscrape

import (
	"context"
	"time"
)

// Snapshot is a stored copy of a character as scraped during one run.
type Snapshot struct {
	ID          string     `json:"id"`
	RunID       string     `json:"runId"`
	Character   *Character `json:"character"`
	ContentHash string     `json:"contentHash"`
	StoredAt    time.Time  `json:"storedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.RunID == "" {
		return Errorf(EINVALID, "snapshot run ID required")
	}
	if s.Character == nil {
		return Errorf(EINVALID, "snapshot character required")
	}
	if s.Character.URL == "" {
		return Errorf(EINVALID, "snapshot character URL required")
	}
	return nil
}

// SnapshotService stores character snapshots across runs.
type SnapshotService interface {
	// CreateSnapshot stores a snapshot, assigning its ID, hash and timestamp.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID    *string `json:"id"`
	RunID *string `json:"runId"`
	Name  *string `json:"name"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
