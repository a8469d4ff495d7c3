package fetch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/chapterkit/chapterize/internal/logger"
)

// Source identifies a URL listing to pull article URLs from.
type Source string

const (
	// SourceHN pulls top story URLs from the Hacker News Firebase API.
	SourceHN Source = "hn"
	// SourceTechmeme scrapes headline links from the Techmeme front page.
	SourceTechmeme Source = "techmeme"
	// SourceFile reads URLs from a local file, one per line.
	SourceFile Source = "file"
)

const (
	hnTopStoriesURL = "https://hacker-news.firebaseio.com/v0/topstories.json"
	hnItemURLFormat = "https://hacker-news.firebaseio.com/v0/item/%d.json"
	techmemeURL     = "https://www.techmeme.com/"
)

// skipHosts are substrings of URLs that are never articles: social
// links, app stores, static assets.
var skipHosts = []string{
	"twitter.com", "x.com", "facebook.com", "linkedin.com",
	"youtube.com", "reddit.com", ".js", ".css", ".png", ".jpg",
	"accounts.google", "play.google", "apps.apple",
}

// ListURLs returns up to limit article URLs from the given source.
// input is the local file path, required only for SourceFile.
func (f *Fetcher) ListURLs(ctx context.Context, source Source, limit int, input string) ([]string, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}
	switch source {
	case SourceHN:
		return f.hnURLs(ctx, limit)
	case SourceTechmeme:
		return f.techmemeURLs(ctx, limit)
	case SourceFile:
		if input == "" {
			return nil, fmt.Errorf("source %q requires an input file", source)
		}
		return fileURLs(input, limit)
	default:
		return nil, fmt.Errorf("unknown URL source: %q", source)
	}
}

// hnURLs fetches top story URLs from the Hacker News API. Self-posts
// (which link back to news.ycombinator.com) are skipped.
func (f *Fetcher) hnURLs(ctx context.Context, limit int) ([]string, error) {
	page, err := f.Fetch(ctx, hnTopStoriesURL)
	if err != nil {
		return nil, fmt.Errorf("fetching top stories: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal([]byte(page.Body), &ids); err != nil {
		return nil, fmt.Errorf("decoding top stories: %w", err)
	}

	// Fetch extra items in case some lack URLs
	if extra := limit * 2; len(ids) > extra {
		ids = ids[:extra]
	}

	var urls []string
	for _, id := range ids {
		if len(urls) >= limit {
			break
		}
		item, err := f.Fetch(ctx, fmt.Sprintf(hnItemURLFormat, id))
		if err != nil {
			logger.Debug("skipping story item", "id", id, "error", err)
			continue
		}
		var story struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(item.Body), &story); err != nil {
			continue
		}
		if story.URL == "" || strings.HasPrefix(story.URL, "https://news.ycombinator.com") {
			continue
		}
		urls = append(urls, story.URL)
	}

	logger.Info("collected story URLs", "source", SourceHN, "count", len(urls))
	return urls, nil
}

// techmemeURLs scrapes external headline links from the Techmeme front
// page, deduplicated in document order.
func (f *Fetcher) techmemeURLs(ctx context.Context, limit int) ([]string, error) {
	page, err := f.Fetch(ctx, techmemeURL)
	if err != nil {
		return nil, fmt.Errorf("fetching techmeme: %w", err)
	}

	urls, err := articleLinks(page.Body, limit)
	if err != nil {
		return nil, fmt.Errorf("parsing techmeme: %w", err)
	}

	logger.Info("collected headline URLs", "source", SourceTechmeme, "count", len(urls))
	return urls, nil
}

// articleLinks extracts external article links from a listing page,
// deduplicated in document order.
func articleLinks(body string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var urls []string
	seen := make(map[string]bool)
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(href, "http") || strings.Contains(href, "techmeme.com") {
			return true
		}
		for _, skip := range skipHosts {
			if strings.Contains(href, skip) {
				return true
			}
		}
		if seen[href] {
			return true
		}
		seen[href] = true
		urls = append(urls, href)
		return len(urls) < limit
	})
	return urls, nil
}

// fileURLs reads URLs from a file, one per line, skipping blanks and
// '#' comments. Lines that do not look like URLs are ignored.
func fileURLs(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.HasPrefix(line, "http") {
			continue
		}
		urls = append(urls, line)
		if len(urls) >= limit {
			break
		}
	}
	return urls, scanner.Err()
}
