// Package fs provides file-based storage for reports and session cookies.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/bisscrape"
)

// Report file name prefixes. Each report is written as <prefix>_<timestamp>.json.
const (
	LinkReportPrefix      = "collected_links"
	CharacterReportPrefix = "character_data"
)

// timestampLayout formats report timestamps as YYYYMMDD_HHMMSS.
const timestampLayout = "20060102_150405"

// ReportFileName returns the file name for a report taken at t.
func ReportFileName(prefix string, t time.Time) string {
	return prefix + "_" + t.Format(timestampLayout) + ".json"
}

// Ensure ReportWriter implements bisscrape.ReportWriter at compile time.
var _ bisscrape.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes reports as indented JSON files to a directory.
type ReportWriter struct {
	baseDir string
}

// NewReportWriter creates a new ReportWriter that writes to the given base directory.
func NewReportWriter(baseDir string) *ReportWriter {
	return &ReportWriter{baseDir: baseDir}
}

// WriteLinkReport writes a link report named after its collection time and
// returns the file path.
func (w *ReportWriter) WriteLinkReport(r *bisscrape.LinkReport) (string, error) {
	if r == nil {
		return "", bisscrape.Errorf(bisscrape.EINVALID, "link report required")
	}
	return w.write(ReportFileName(LinkReportPrefix, r.CollectedAt), r)
}

// WriteCharacterReport writes a character report named after its scrape
// time and returns the file path.
func (w *ReportWriter) WriteCharacterReport(r *bisscrape.CharacterReport) (string, error) {
	if r == nil {
		return "", bisscrape.Errorf(bisscrape.EINVALID, "character report required")
	}
	return w.write(ReportFileName(CharacterReportPrefix, r.ScrapedAt), r)
}

func (w *ReportWriter) write(name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(w.baseDir, name)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
