// Package fetch downloads web pages for offline chapter processing.
// It provides rate-limited, retrying page fetching, URL sourcing from
// a few well-known listings, a local page store, and a static file
// server so downstream tools can re-read saved pages without network
// access.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
	"github.com/gocolly/colly/v2"

	"github.com/chapterkit/chapterize/internal/logger"
)

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration `validate:"min=0"`
	// Retries is the number of additional attempts after a failed
	// fetch. Zero means a single attempt.
	Retries int `validate:"min=0"`
	// RetryDelay is the base sleep between attempts; the wait grows
	// linearly with the attempt number.
	RetryDelay time.Duration `validate:"min=0"`
	// RequestsPerSecond and BurstSize feed the token-bucket limiter.
	RequestsPerSecond float64 `validate:"gt=0"`
	BurstSize         int     `validate:"min=1"`
}

// DefaultConfig returns conservative fetch defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:         defaultUserAgent,
		Timeout:           20 * time.Second,
		Retries:           2,
		RetryDelay:        time.Second,
		RequestsPerSecond: 5.0,
		BurstSize:         5,
	}
}

// Page is a single fetched document.
type Page struct {
	URL         string    `json:"url" yaml:"url"`
	Body        string    `json:"-" yaml:"-"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	StatusCode  int       `json:"status_code" yaml:"status_code"`
	ContentType string    `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	FetchedAt   time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// Fetcher downloads pages with rate limiting and retries. Safe for
// concurrent use.
type Fetcher struct {
	config  Config
	limiter *Limiter
}

// New creates a Fetcher from cfg. Zero-valued fields are filled from
// DefaultConfig before validation.
func New(cfg Config) (*Fetcher, error) {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = def.BurstSize
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid fetch config: %w", err)
	}
	return &Fetcher{
		config:  cfg,
		limiter: NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
	}, nil
}

// Fetch downloads targetURL, waiting on the rate limiter first and
// retrying transient failures with linear backoff. A 429 response feeds
// an extra backoff window into the limiter before the next attempt.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (Page, error) {
	var page Page
	var lastErr error

	attempts := f.config.Retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return page, err
		}

		page, lastErr = f.fetchOnce(targetURL)
		if lastErr == nil {
			return page, nil
		}
		if page.StatusCode == http.StatusTooManyRequests {
			f.limiter.RecordRateLimitError(0)
		}

		if attempt < attempts {
			logger.Debug("fetch attempt failed, retrying",
				"url", targetURL,
				"attempt", attempt,
				"error", lastErr)
			if err := sleepCtx(ctx, time.Duration(attempt)*f.config.RetryDelay); err != nil {
				return page, err
			}
		}
	}

	return page, fmt.Errorf("fetching %s: %w", targetURL, lastErr)
}

// fetchOnce performs a single request using colly.
func (f *Fetcher) fetchOnce(targetURL string) (Page, error) {
	page := Page{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
	)
	c.SetRequestTimeout(f.config.Timeout)

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		page.ContentType = r.Headers.Get("Content-Type")
		page.Body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			page.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return page, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return page, fetchErr
	}

	if strings.Contains(page.ContentType, "html") {
		page.Title = parseTitle(page.Body)
	}
	return page, nil
}

// parseTitle extracts the page <title> text, or "" if none.
func parseTitle(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
