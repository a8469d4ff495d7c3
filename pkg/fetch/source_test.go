package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestArticleLinks(t *testing.T) {
	body := `<html><body>
		<a href="https://example.com/story-one">One</a>
		<a href="https://www.techmeme.com/river">internal</a>
		<a href="https://twitter.com/someone/status/1">social</a>
		<a href="https://example.com/story-one">duplicate</a>
		<a href="/relative/path">relative</a>
		<a href="https://cdn.example.com/app.js">asset</a>
		<a href="https://example.org/story-two">Two</a>
	</body></html>`

	urls, err := articleLinks(body, 10)
	if err != nil {
		t.Fatalf("articleLinks() error = %v", err)
	}

	want := []string{
		"https://example.com/story-one",
		"https://example.org/story-two",
	}
	if len(urls) != len(want) {
		t.Fatalf("articleLinks() = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestArticleLinks_Limit(t *testing.T) {
	body := `<body>
		<a href="https://a.example/1">1</a>
		<a href="https://a.example/2">2</a>
		<a href="https://a.example/3">3</a>
	</body>`

	urls, err := articleLinks(body, 2)
	if err != nil {
		t.Fatalf("articleLinks() error = %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("articleLinks() returned %d URLs, want 2", len(urls))
	}
}

func TestFileURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# stress test URLs
https://example.com/a

not-a-url
https://example.com/b
https://example.com/c
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := fileURLs(path, 2)
	if err != nil {
		t.Fatalf("fileURLs() error = %v", err)
	}
	want := []string{"https://example.com/a", "https://example.com/b"}
	if len(urls) != len(want) {
		t.Fatalf("fileURLs() = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestFileURLs_Missing(t *testing.T) {
	if _, err := fileURLs(filepath.Join(t.TempDir(), "absent.txt"), 10); err == nil {
		t.Error("fileURLs() should fail for a missing file")
	}
}

func TestListURLs_Validation(t *testing.T) {
	f := testFetcher(t, 0)
	ctx := context.Background()

	if _, err := f.ListURLs(ctx, SourceFile, 10, ""); err == nil {
		t.Error("ListURLs(file) without input should fail")
	}
	if _, err := f.ListURLs(ctx, Source("rss"), 10, ""); err == nil {
		t.Error("ListURLs() with unknown source should fail")
	}
	if _, err := f.ListURLs(ctx, SourceHN, 0, ""); err == nil {
		t.Error("ListURLs() with zero limit should fail")
	}
}
