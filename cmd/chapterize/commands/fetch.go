package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chapterkit/chapterize/internal/logger"
	"github.com/chapterkit/chapterize/internal/output"
	"github.com/chapterkit/chapterize/pkg/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download pages for offline chapter processing",
	Long: `Fetch collects article URLs from a source, downloads each page into a
local page directory, and writes a URL list pointing at the saved
copies. With --serve (the default) a local static file server is
started so the list can be processed without touching the network
again.

Sources:
  hn        Hacker News top stories (Firebase API)
  techmeme  Techmeme front-page headlines
  file      a local file with one URL per line ('#' comments allowed)

Examples:
  chapterize fetch --source hn --limit 100 --urls-out /tmp/urls.txt
  chapterize fetch --source file --input urls.txt --no-serve
  chapterize fetch --source techmeme --manifest manifest.yaml`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	flags := fetchCmd.Flags()

	// Source settings
	flags.String("source", "", "URL source: hn, techmeme, file (required)")
	flags.String("input", "", "input URL file (required for --source file)")
	flags.Int("limit", 100, "max pages to fetch")

	// Fetch settings
	flags.Duration("timeout", 20*time.Second, "request timeout")
	flags.Int("retries", 2, "retries per page after a failed fetch")
	flags.Float64("rate", 5.0, "sustained requests per second")
	flags.String("user-agent", "", "HTTP User-Agent header")

	// Output settings
	flags.String("pages-dir", "/tmp/chapterize_pages", "directory to save pages")
	flags.String("urls-out", "/tmp/chapterize_urls.txt", "output URL list path")
	flags.String("manifest", "", "write a fetch manifest to this file")
	flags.String("manifest-format", "yaml", "manifest format: json, yaml")

	// Server settings
	flags.Bool("serve", true, "serve the page directory after fetching (use --serve=false to disable)")
	flags.Int("port", 8765, "local HTTP server port")

	_ = fetchCmd.MarkFlagRequired("source")
}

func runFetch(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()
	source, _ := flags.GetString("source")
	input, _ := flags.GetString("input")
	limit, _ := flags.GetInt("limit")
	timeout, _ := flags.GetDuration("timeout")
	retries, _ := flags.GetInt("retries")
	rps, _ := flags.GetFloat64("rate")
	userAgent, _ := flags.GetString("user-agent")
	pagesDir, _ := flags.GetString("pages-dir")
	urlsOut, _ := flags.GetString("urls-out")
	manifestPath, _ := flags.GetString("manifest")
	manifestFormat, _ := flags.GetString("manifest-format")
	serve, _ := flags.GetBool("serve")
	port, _ := flags.GetInt("port")

	if fetch.Source(source) == fetch.SourceFile && input == "" {
		return fmt.Errorf("--input is required when --source is file")
	}

	fetcher, err := fetch.New(fetch.Config{
		UserAgent:         userAgent,
		Timeout:           timeout,
		Retries:           retries,
		RequestsPerSecond: rps,
	})
	if err != nil {
		return err
	}

	urls, err := fetcher.ListURLs(ctx, fetch.Source(source), limit, input)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found from source %q", source)
	}

	store, err := fetch.NewStore(pagesDir)
	if err != nil {
		return err
	}

	entries, err := fetcher.DownloadAll(ctx, urls, store)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no pages downloaded")
	}
	logger.Info("download complete", "saved", len(entries), "requested", len(urls), "dir", pagesDir)

	if manifestPath != "" {
		if err := writeManifest(manifestPath, manifestFormat, entries); err != nil {
			return err
		}
		logger.Info("wrote manifest", "path", manifestPath)
	}

	if !serve {
		if err := store.WriteURLList(urlsOut, entries, ""); err != nil {
			return err
		}
		logger.Info("wrote URL list", "path", urlsOut, "count", len(entries))
		return nil
	}

	server := fetch.NewServer(store.Dir(), port)
	baseURL, err := server.Start()
	if err != nil {
		return err
	}

	if err := store.WriteURLList(urlsOut, entries, baseURL); err != nil {
		return err
	}
	logger.Info("wrote URL list", "path", urlsOut, "count", len(entries), "base_url", baseURL)

	// Serve until interrupted.
	<-ctx.Done()
	logger.Info("shutting down page server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// writeManifest serializes fetch entries to path in the given format.
func writeManifest(path string, format string, entries []fetch.Entry) error {
	dest, err := output.Destination(path)
	if err != nil {
		return err
	}
	defer dest.Close()

	w, err := output.NewWriter(dest, output.Format(format))
	if err != nil {
		return err
	}
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	if err := w.WriteAll(items); err != nil {
		return err
	}
	return w.Close()
}
