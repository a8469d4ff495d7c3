package normalize

import (
	"fmt"
	"regexp"
	"strconv"
)

var headingRe = regexp.MustCompile(`(?i)<(/?)h([1-6])([^>]*)>`)

// ShiftHeadings demotes every heading tag in doc by one level
// (h1 -> h2, h2 -> h3, ...), clamped at h6. Opening tags keep their
// attribute text verbatim; closing tags are re-emitted bare.
//
// Each tag is rewritten independently of any partner tag, so a document
// with mismatched heading pairs keeps its mismatch rather than having it
// repaired. Non-heading tags and text content are untouched.
func ShiftHeadings(doc string) string {
	return headingRe.ReplaceAllStringFunc(doc, func(match string) string {
		parts := headingRe.FindStringSubmatch(match)
		if parts == nil {
			return match
		}
		level, _ := strconv.Atoi(parts[2])
		newLevel := level + 1
		if newLevel > 6 {
			newLevel = 6
		}
		if parts[1] == "/" {
			return fmt.Sprintf("</h%d>", newLevel)
		}
		return fmt.Sprintf("<h%d%s>", newLevel, parts[3])
	})
}
