package normalize

import (
	"html"
	"regexp"
)

var bodyTagRe = regexp.MustCompile(`(?i)<body[^>]*>`)

// InsertTitle builds an h1 element containing the escaped title and
// inserts it immediately after the first <body...> tag. If the document
// has no body tag, the element is prepended instead. The result always
// contains exactly one newly inserted h1; run after ShiftHeadings it is
// the only level-1 heading in the document.
func InsertTitle(doc string, title string) string {
	heading := "<h1>" + html.EscapeString(title) + "</h1>\n"
	if loc := bodyTagRe.FindStringIndex(doc); loc != nil {
		pos := loc[1]
		return doc[:pos] + "\n" + heading + doc[pos:]
	}
	return heading + doc
}
