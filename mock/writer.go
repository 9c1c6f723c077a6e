package mock

import (
	"context"

	"github.com/fwojciec/bisscrape"
)

var _ bisscrape.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of bisscrape.ReportWriter.
type ReportWriter struct {
	WriteLinkReportFn      func(r *bisscrape.LinkReport) (string, error)
	WriteCharacterReportFn func(r *bisscrape.CharacterReport) (string, error)
}

func (w *ReportWriter) WriteLinkReport(r *bisscrape.LinkReport) (string, error) {
	return w.WriteLinkReportFn(r)
}

func (w *ReportWriter) WriteCharacterReport(r *bisscrape.CharacterReport) (string, error) {
	return w.WriteCharacterReportFn(r)
}

var _ bisscrape.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of bisscrape.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn func(ctx context.Context, s *bisscrape.Snapshot) error
	FindSnapshotsFn  func(ctx context.Context, filter bisscrape.SnapshotFilter) ([]*bisscrape.Snapshot, error)
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *bisscrape.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snap)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter bisscrape.SnapshotFilter) ([]*bisscrape.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}
