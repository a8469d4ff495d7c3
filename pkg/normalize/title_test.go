package normalize

import "testing"

func newResolver(t *testing.T, separators string) *TitleResolver {
	t.Helper()
	r, err := NewTitleResolver(separators)
	if err != nil {
		t.Fatalf("NewTitleResolver(%q) error = %v", separators, err)
	}
	return r
}

// --- Resolve Tests ---

func TestResolve_FromTitleTag(t *testing.T) {
	r := newResolver(t, DefaultSeparators)

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"plain", `<html><head><title>My Great Article</title></head></html>`, "My Great Article"},
		{"suffix_stripped", `<title>My Article - Site Name</title>`, "My Article"},
		{"entities_unescaped", `<title>Fish &amp; Chips</title>`, "Fish & Chips"},
		{"whitespace_trimmed", "<title>  Padded Title \n</title>", "Padded Title"},
		{"mixed_case_tag", `<TITLE>Shouted</TITLE>`, "Shouted"},
		{"first_occurrence_wins", `<title>First</title><title>Second</title>`, "First"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.doc, ""); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_FromH1(t *testing.T) {
	r := newResolver(t, DefaultSeparators)

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"plain", `<body><h1>Heading Title</h1></body>`, "Heading Title"},
		{"nested_tags_stripped", `<h1><a href="#">Link <em>Title</em></a></h1>`, "Link Title"},
		{"multiline_content", "<h1>Spans\nLines</h1>", "Spans\nLines"},
		{"attributes_ignored", `<h1 class="big" id="top">Styled</h1>`, "Styled"},
		{"mixed_case", `<H1>Caps</H1>`, "Caps"},
		// An h1-derived title keeps its separator suffix: only the
		// <title>/override path is suffix-cleaned.
		{"suffix_kept", `<h1>Hyphen - Kept</h1>`, "Hyphen - Kept"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.doc, ""); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_FallbackChain(t *testing.T) {
	r := newResolver(t, DefaultSeparators)

	tests := []struct {
		name     string
		doc      string
		override string
		want     string
	}{
		{"override_wins", `<title>Doc Title</title><h1>H1 Title</h1>`, "Override", "Override"},
		{"override_cleaned", `<title>Doc Title</title>`, "Override - Site", "Override"},
		{"title_beats_h1", `<title>Doc Title</title><h1>H1 Title</h1>`, "", "Doc Title"},
		{"empty_title_falls_to_h1", `<title>   </title><h1>H1 Title</h1>`, "", "H1 Title"},
		{"untitled_title_falls_to_h1", `<title>Untitled</title><h1>H1 Title</h1>`, "", "H1 Title"},
		{"suffix_only_title_falls_to_h1", `<title> - Site Name</title><h1>H1 Title</h1>`, "", "H1 Title"},
		{"empty_h1_falls_to_untitled", `<h1>  </h1>`, "", "Untitled"},
		{"nothing_usable", `<p>plain paragraph</p>`, "", "Untitled"},
		{"unclosed_title_ignored", `<title>Never closed`, "", "Untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.doc, tt.override); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Clean Tests ---

func TestClean(t *testing.T) {
	r := newResolver(t, DefaultSeparators)

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"dash", "Article Title - Site Name", "Article Title"},
		{"pipe", "Article | Site", "Article"},
		{"en_dash", "Article – Site", "Article"},
		{"em_dash", "Article — Site", "Article"},
		{"no_suffix", "Simple Title", "Simple Title"},
		{"empty", "", "Untitled"},
		{"whitespace_only", "   ", "Untitled"},
		// A separator must be followed by whitespace to count, so
		// hyphenated words are left alone.
		{"hyphenated_word", "Well-known Facts", "Well-known Facts"},
		{"first_separator_wins", "A - B - C", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Clean(tt.title); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestClean_CustomSeparators(t *testing.T) {
	// A policy without '-' keeps dash suffixes but still strips '~'.
	r := newResolver(t, "~")

	if got := r.Clean("Title - Site"); got != "Title - Site" {
		t.Errorf("Clean() = %q, want dash kept with custom separators", got)
	}
	if got := r.Clean("Title ~ Site"); got != "Title" {
		t.Errorf("Clean() = %q, want %q", got, "Title")
	}
}

func TestNewTitleResolver_Empty(t *testing.T) {
	if _, err := NewTitleResolver(""); err == nil {
		t.Error("NewTitleResolver(\"\") should return an error")
	}
}
