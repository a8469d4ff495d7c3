package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chapterkit/chapterize/internal/logger"
)

// minPageBytes is the smallest body treated as a real page; anything
// shorter is usually an error stub or a redirect shell.
const minPageBytes = 100

// Entry records one saved page for the manifest.
type Entry struct {
	URL        string    `json:"url" yaml:"url"`
	File       string    `json:"file" yaml:"file"`
	Title      string    `json:"title,omitempty" yaml:"title,omitempty"`
	StatusCode int       `json:"status_code" yaml:"status_code"`
	Size       int64     `json:"size" yaml:"size"`
	FetchedAt  time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// Store saves fetched pages under content-addressed names in a single
// directory.
type Store struct {
	dir string
}

// NewStore creates the page directory if needed and returns a store
// over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating page dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's page directory.
func (s *Store) Dir() string {
	return s.dir
}

// Filename returns the stable file name a URL is stored under.
func (s *Store) Filename(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:8]) + ".html"
}

// Has reports whether a non-empty page is already saved for url.
func (s *Store) Has(url string) bool {
	info, err := os.Stat(filepath.Join(s.dir, s.Filename(url)))
	return err == nil && info.Size() > 0
}

// Save writes a fetched page to the store and returns its manifest
// entry. Bodies below minPageBytes are rejected.
func (s *Store) Save(page Page) (Entry, error) {
	if len(page.Body) < minPageBytes {
		return Entry{}, fmt.Errorf("page body too small (%d bytes) for %s", len(page.Body), page.URL)
	}
	name := s.Filename(page.URL)
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(page.Body), 0o644); err != nil {
		return Entry{}, fmt.Errorf("saving page: %w", err)
	}
	return Entry{
		URL:        page.URL,
		File:       name,
		Title:      page.Title,
		StatusCode: page.StatusCode,
		Size:       int64(len(page.Body)),
		FetchedAt:  page.FetchedAt,
	}, nil
}

// DownloadAll fetches every URL and saves it into store, skipping URLs
// already present. Failed fetches are logged and skipped rather than
// aborting the batch. The returned entries preserve input order.
func (f *Fetcher) DownloadAll(ctx context.Context, urls []string, store *Store) ([]Entry, error) {
	var entries []Entry
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return entries, err
		}
		if store.Has(url) {
			logger.Debug("page already saved", "url", url)
			entries = append(entries, Entry{URL: url, File: store.Filename(url)})
			continue
		}

		page, err := f.Fetch(ctx, url)
		if err != nil {
			logger.Warn("skipping page", "url", url, "error", err)
			continue
		}
		entry, err := store.Save(page)
		if err != nil {
			logger.Warn("skipping page", "url", url, "error", err)
			continue
		}
		entries = append(entries, entry)

		logger.Info("saved page",
			"progress", fmt.Sprintf("%d/%d", i+1, len(urls)),
			"url", url,
			"size", humanize.Bytes(uint64(entry.Size)))
	}
	return entries, nil
}

// WriteURLList writes one line per entry to path. With a non-empty
// baseURL each line is baseURL/file (for use with the local server);
// otherwise the local file path is written.
func (s *Store) WriteURLList(path string, entries []Entry, baseURL string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating URL list: %w", err)
	}
	defer f.Close()

	for _, e := range entries {
		var line string
		if baseURL != "" {
			line = fmt.Sprintf("%s/%s\n", baseURL, e.File)
		} else {
			line = filepath.Join(s.dir, e.File) + "\n"
		}
		if _, err := f.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}
