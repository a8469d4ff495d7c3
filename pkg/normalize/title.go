package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	titleTagRe = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)
	firstH1Re  = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	innerTagRe = regexp.MustCompile(`<[^>]+>`)
)

// TitleResolver derives a chapter title from an HTML document or a
// caller-supplied override. The separator set used for suffix cleaning
// is fixed at construction.
type TitleResolver struct {
	splitRe *regexp.Regexp
}

// NewTitleResolver creates a resolver that treats each rune in
// separators as a potential site-name separator. separators must be
// non-empty.
func NewTitleResolver(separators string) (*TitleResolver, error) {
	if separators == "" {
		return nil, fmt.Errorf("separator set must not be empty")
	}
	var class strings.Builder
	for _, r := range separators {
		// Escape runes that are special inside a character class.
		switch r {
		case '-', ']', '^', '\\':
			class.WriteByte('\\')
		}
		class.WriteRune(r)
	}
	splitRe, err := regexp.Compile(`\s*[` + class.String() + `]\s+`)
	if err != nil {
		return nil, fmt.Errorf("invalid separator set %q: %w", separators, err)
	}
	return &TitleResolver{splitRe: splitRe}, nil
}

// Resolve determines the chapter title for doc. Precedence: override
// (cleaned) > <title> content (unescaped and cleaned) > first <h1> text
// (nested tags stripped) > "Untitled".
//
// Only the override and <title> paths are suffix-cleaned. An <h1> rarely
// carries a "Article - Site Name" suffix, so its text is kept whole even
// when it contains a separator. Resolution never fails; malformed or
// absent tags fall through to the next strategy.
func (r *TitleResolver) Resolve(doc string, override string) string {
	if override != "" {
		return r.Clean(override)
	}

	// Try <title> first
	if m := titleTagRe.FindStringSubmatch(doc); m != nil {
		title := r.Clean(html.UnescapeString(strings.TrimSpace(m[1])))
		if title != "" && title != Untitled {
			return title
		}
	}

	// Fall back to the first <h1>
	if m := firstH1Re.FindStringSubmatch(doc); m != nil {
		if title := strings.TrimSpace(innerTagRe.ReplaceAllString(m[1], "")); title != "" {
			return title
		}
	}

	return Untitled
}

// Clean removes a trailing site-name suffix like "Article - Site Name",
// keeping the portion before the first separator run. A separator only
// counts when followed by whitespace, so hyphenated words survive. An
// empty result becomes "Untitled".
func (r *TitleResolver) Clean(title string) string {
	parts := r.splitRe.Split(title, 2)
	result := strings.TrimSpace(parts[0])
	if result == "" {
		return Untitled
	}
	return result
}
