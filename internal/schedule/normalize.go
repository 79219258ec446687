package schedule

import (
	"regexp"
	"strings"

	"github.com/avolkov/zvonar/internal/errors"
)

var (
	// boilerplatePattern matches whole lines carrying the schedule title or
	// the parish name; those lines never hold schedule data.
	boilerplatePattern = regexp.MustCompile(`(?m)^.*(?:Расписание Богослужений|Прихода).*\n?`)

	// altSpellingPattern matches a parenthesized alternate spelling right
	// after a Cyrillic word: "среда (среду)" becomes "среда, среду".
	altSpellingPattern = regexp.MustCompile(`(?i)([а-я]+)\s*\(\s*([а-я]+)\s*\)`)

	// dashTimePattern finds dash-separated digit pairs that may be time
	// ranges ("9-30", "17-00").
	dashTimePattern = regexp.MustCompile(`\d+-\d+`)

	// clockTimePattern finds colon-separated digit pairs ("9:30").
	clockTimePattern = regexp.MustCompile(`\d+:\d+`)

	blankLinesPattern = regexp.MustCompile(`\n\s*\n`)
	spaceRunPattern   = regexp.MustCompile(`[ ]{2,}`)
)

// Normalize cleans raw extracted schedule text: strips boilerplate lines,
// folds parenthesized alternate spellings, canonicalizes time tokens to
// HH:MM and collapses whitespace. The rules run in a fixed order because
// the later ones depend on the earlier cleanup. A blank input is an error,
// never an empty schedule.
func Normalize(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", errors.NewEmptyInput()
	}

	text = boilerplatePattern.ReplaceAllString(text, "")
	text = altSpellingPattern.ReplaceAllString(text, "$1, $2")
	text = normalizeDashTimes(text)
	text = padShortHours(text)
	text = blankLinesPattern.ReplaceAllString(text, "\n")
	text = spaceRunPattern.ReplaceAllString(text, " ")

	return text, nil
}

// normalizeDashTimes rewrites a start-of-range token "H-MM"/"HH-MM" as
// "H:MM -", ready to be joined with the end time that follows it. Tokens
// with a 3+ digit hour or a minute part that is not exactly two digits are
// left alone.
func normalizeDashTimes(s string) string {
	return dashTimePattern.ReplaceAllStringFunc(s, func(tok string) string {
		hour, minute, _ := strings.Cut(tok, "-")
		if len(hour) <= 2 && len(minute) == 2 {
			return hour + ":" + minute + " -"
		}
		return tok
	})
}

// padShortHours zero-pads single-digit hours: "9:30" becomes "09:30".
// Matching on the full digit run means a token adjacent to other digits
// ("19:30", "9:305") is never touched.
func padShortHours(s string) string {
	return clockTimePattern.ReplaceAllStringFunc(s, func(tok string) string {
		hour, minute, _ := strings.Cut(tok, ":")
		if len(hour) == 1 && len(minute) == 2 {
			return "0" + tok
		}
		return tok
	})
}
