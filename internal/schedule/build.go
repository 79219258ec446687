package schedule

import (
	"fmt"
	"regexp"
	"strings"
)

// rowSize is the number of schedule cards per grid row on the target page.
const rowSize = 4

// entryPattern splits the tagged stream on date headings, capturing the
// heading text.
var entryPattern = regexp.MustCompile(`<h3>(.*?)</h3>`)

const cardTemplate = `
        <div class="col-lg-3 col-sm-6 probootstrap-animate">
          <div class="form-group">
            <h3>%s</h3>
            %s
          </div>
        </div>`

const rowComment = "\n      <!------------------------------ row ------------------------------>"

// BuildFragment groups the tagged heading/content stream into rows of
// schedule cards matching the target page's grid. Input with no headings
// yields an empty fragment; a trailing heading with no content after it
// produces no card, and text before the first heading is dropped.
func BuildFragment(tagged string) string {
	parts := splitEntries(tagged)

	var rows []string
	var cards []string
	for i := 0; i+1 < len(parts); i += 2 {
		cards = append(cards, fmt.Sprintf(cardTemplate, parts[i], parts[i+1]))
		if len(cards) == rowSize {
			rows = append(rows, wrapRow(cards))
			cards = cards[:0]
		}
	}
	if len(cards) > 0 {
		rows = append(rows, wrapRow(cards))
	}

	return strings.Join(rows, "\n")
}

// splitEntries flattens the tagged stream into an alternating
// heading/content list. Empty fragments are filtered out, so two adjacent
// headings or a heading-less preamble shift the pairing; that silent-drop
// behavior is deliberate, see the builder tests.
func splitEntries(tagged string) []string {
	matches := entryPattern.FindAllStringSubmatchIndex(tagged, -1)
	if len(matches) == 0 {
		return nil
	}

	var parts []string
	for i, m := range matches {
		if heading := strings.TrimSpace(tagged[m[2]:m[3]]); heading != "" {
			parts = append(parts, heading)
		}

		end := len(tagged)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if content := strings.TrimSpace(tagged[m[1]:end]); content != "" {
			parts = append(parts, content)
		}
	}
	return parts
}

func wrapRow(cards []string) string {
	return rowComment + "\n      <div class=\"row\">" + strings.Join(cards, "") + "\n      </div>\n"
}
