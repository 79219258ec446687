// Package schedule turns free-form liturgical schedule text into a
// normalized, row-grouped HTML fragment. The pipeline runs in three fixed
// stages: Normalize cleans the raw text, Tag classifies lines into
// heading/content markup, and BuildFragment groups tagged entries into
// grid rows for the target page.
package schedule

import (
	"regexp"
	"strings"
)

// wordForms holds the canonical nominative form of a vocabulary word plus
// the grammatical-case variants that appear in schedule headings.
type wordForms struct {
	Canonical string
	Variants  []string
}

// monthForms enumerates the twelve Russian month names with the genitive
// variants used in dated headings ("Апреля, Понедельник").
var monthForms = []wordForms{
	{"январь", []string{"январь", "января"}},
	{"февраль", []string{"февраль", "февраля"}},
	{"март", []string{"март", "марта"}},
	{"апрель", []string{"апрель", "апреля"}},
	{"май", []string{"май", "мая"}},
	{"июнь", []string{"июнь", "июня"}},
	{"июль", []string{"июль", "июля"}},
	{"август", []string{"август", "августа"}},
	{"сентябрь", []string{"сентябрь", "сентября"}},
	{"октябрь", []string{"октябрь", "октября"}},
	{"ноябрь", []string{"ноябрь", "ноября"}},
	{"декабрь", []string{"декабрь", "декабря"}},
}

// weekdayForms enumerates the seven Russian weekday names with the
// accusative variants some schedules use.
var weekdayForms = []wordForms{
	{"понедельник", []string{"понедельник"}},
	{"вторник", []string{"вторник"}},
	{"среда", []string{"среда", "среду"}},
	{"четверг", []string{"четверг"}},
	{"пятница", []string{"пятница", "пятницу"}},
	{"суббота", []string{"суббота", "субботу"}},
	{"воскресенье", []string{"воскресенье"}},
}

// alternation joins every variant of every word into a regexp alternation,
// longer variants first so no form is shadowed by its own prefix.
func alternation(forms []wordForms) string {
	var variants []string
	for _, f := range forms {
		variants = append(variants, f.Variants...)
	}
	// Insertion-stable sort by descending length.
	for i := 1; i < len(variants); i++ {
		for j := i; j > 0 && len(variants[j]) > len(variants[j-1]); j-- {
			variants[j], variants[j-1] = variants[j-1], variants[j]
		}
	}
	escaped := make([]string, len(variants))
	for i, v := range variants {
		escaped[i] = regexp.QuoteMeta(v)
	}
	return strings.Join(escaped, "|")
}

// headingPattern matches a dated heading: a month name, a comma, a weekday
// name. The vocabulary is closed; anything else is content.
var headingPattern = regexp.MustCompile(
	`(?i)(?:` + alternation(monthForms) + `)\s*,\s*(?:` + alternation(weekdayForms) + `)`)

// IsHeading reports whether a line contains a month-plus-weekday date
// heading, case-insensitively.
func IsHeading(line string) bool {
	return headingPattern.MatchString(line)
}
