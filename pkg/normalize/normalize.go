// Package normalize rewrites the heading structure of a single HTML
// document so it can be consumed as one chapter by an e-book build that
// splits chapters at top-level headings. It resolves a chapter title,
// demotes every existing heading one level (clamped at h6), and inserts
// a single h1 with the title at the start of the body.
//
// The document is treated as text. All rewrites are pattern-based, so
// malformed or partial markup passes through untouched rather than
// failing: a missing <title>, a missing <body>, or unpaired heading tags
// each fall back to a documented default.
package normalize

import (
	"github.com/go-playground/validator/v10"
)

// Untitled is the fallback chapter title used when nothing usable can be
// derived from the document.
const Untitled = "Untitled"

// DefaultSeparators are the characters recognized as title/site-name
// separators by TitleResolver.Clean: hyphen, pipe, en dash, em dash.
const DefaultSeparators = "-|–—"

// Config controls normalization policy.
type Config struct {
	// Separators is the set of characters treated as a site-name
	// separator when cleaning <title>-derived and override titles.
	Separators string `validate:"required,min=1"`
}

// DefaultConfig returns the standard normalization policy.
func DefaultConfig() Config {
	return Config{Separators: DefaultSeparators}
}

// Normalizer applies the full chapter transform: resolve title, shift
// headings, insert the title heading. It is stateless and safe for
// concurrent use.
type Normalizer struct {
	resolver *TitleResolver
}

// New creates a Normalizer from cfg. The configuration is validated;
// an empty separator set is rejected.
func New(cfg Config) (*Normalizer, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}
	resolver, err := NewTitleResolver(cfg.Separators)
	if err != nil {
		return nil, err
	}
	return &Normalizer{resolver: resolver}, nil
}

// Normalize transforms doc into chapter form. If titleOverride is
// non-empty it is used (after cleaning) instead of any document-derived
// title. The title is resolved against the original document before
// headings are shifted, so the inserted heading can never feed back into
// resolution.
//
// Normalize is not idempotent: running it on its own output demotes the
// already-demoted headings again and inserts a second title heading.
// Apply it exactly once per source document.
func (n *Normalizer) Normalize(doc string, titleOverride string) string {
	title := n.resolver.Resolve(doc, titleOverride)
	shifted := ShiftHeadings(doc)
	return InsertTitle(shifted, title)
}
