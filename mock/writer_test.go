package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateSnapshotFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *bisscrape.Snapshot
		s := &mock.SnapshotService{
			CreateSnapshotFn: func(_ context.Context, snap *bisscrape.Snapshot) error {
				calledWith = snap
				return nil
			},
		}

		snap := &bisscrape.Snapshot{
			RunID:     "run-1",
			Character: &bisscrape.Character{Name: "Aelektra", URL: "https://example.com/c/1/aelektra"},
		}

		err := s.CreateSnapshot(context.Background(), snap)

		require.NoError(t, err)
		assert.Same(t, snap, calledWith)
	})

	t.Run("returns error from CreateSnapshotFn", func(t *testing.T) {
		t.Parallel()

		want := bisscrape.Errorf(bisscrape.EINTERNAL, "disk full")
		s := &mock.SnapshotService{
			CreateSnapshotFn: func(context.Context, *bisscrape.Snapshot) error {
				return want
			},
		}

		err := s.CreateSnapshot(context.Background(), &bisscrape.Snapshot{})

		assert.Equal(t, want, err)
	})
}
