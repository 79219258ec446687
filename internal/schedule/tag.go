package schedule

import (
	"regexp"
	"strings"
)

var (
	brSpacePattern = regexp.MustCompile(`<br />\s*`)
	h3SpacePattern = regexp.MustCompile(`<h3>\s*`)
)

// Tag walks normalized text line by line and emits the tagged intermediate
// stream: date headings wrapped in <h3>, content lines prefixed with line
// breaks. The first content line after a heading gets a single break; every
// later content line, whether a new time slot or a standalone note, gets a
// double break for visual separation. Tag is total: it never fails, it only
// classifies.
func Tag(text string) string {
	var b strings.Builder
	prevHeading := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if IsHeading(line) {
			b.WriteString("<h3>" + line + "</h3>\n")
			prevHeading = true
			continue
		}

		if prevHeading {
			b.WriteString("<br />" + trimmed + "\n")
			prevHeading = false
		} else {
			b.WriteString("<br /><br />" + trimmed + "\n")
		}
	}

	// Cosmetic: drop whitespace right after an opening tag.
	out := brSpacePattern.ReplaceAllString(b.String(), "<br />")
	return h3SpacePattern.ReplaceAllString(out, "<h3>")
}
