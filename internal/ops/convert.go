package ops

import (
	"strings"

	"github.com/avolkov/zvonar/internal/schedule"
)

// ConvertInput contains parameters for the Convert operation.
type ConvertInput struct {
	Text string // required: raw schedule text
}

// ConvertOutput contains the result of the Convert operation.
type ConvertOutput struct {
	Fragment string `json:"fragment"`
	Entries  int    `json:"entries"`
	Rows     int    `json:"rows"`
}

// Convert runs the text pipeline: normalize, tag, build. A blank input is
// an EMPTY_INPUT error; input with no recognizable headings is valid and
// yields an empty fragment with zero counts.
func Convert(input ConvertInput) (*ConvertOutput, error) {
	normalized, err := schedule.Normalize(input.Text)
	if err != nil {
		return nil, err
	}

	tagged := schedule.Tag(normalized)
	fragment := schedule.BuildFragment(tagged)

	return &ConvertOutput{
		Fragment: fragment,
		Entries:  strings.Count(fragment, "<h3>"),
		Rows:     strings.Count(fragment, `<div class="row">`),
	}, nil
}
