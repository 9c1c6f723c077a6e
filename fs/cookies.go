package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/bisscrape"
)

// Ensure CookieStore implements bisscrape.CookieStore at compile time.
var _ bisscrape.CookieStore = (*CookieStore)(nil)

// CookieStore persists session cookies as a JSON array in a single file.
type CookieStore struct {
	path string
}

// NewCookieStore creates a new CookieStore backed by the file at path.
func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

// Path returns the backing file path.
func (s *CookieStore) Path() string {
	return s.path
}

// LoadCookies returns the saved cookies. A missing file yields no cookies.
func (s *CookieStore) LoadCookies() ([]bisscrape.Cookie, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []bisscrape.Cookie{}, nil
	} else if err != nil {
		return nil, err
	}

	var cookies []bisscrape.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, bisscrape.Errorf(bisscrape.EINVALID, "invalid cookie file %s: %v", s.path, err)
	}
	if cookies == nil {
		cookies = []bisscrape.Cookie{}
	}
	return cookies, nil
}

// SaveCookies replaces the saved cookies.
func (s *CookieStore) SaveCookies(cookies []bisscrape.Cookie) error {
	if cookies == nil {
		cookies = []bisscrape.Cookie{}
	}
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}
	return writeFileAtomic(s.path, data)
}
