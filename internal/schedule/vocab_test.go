package schedule

import "testing"

func TestIsHeading(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"genitive month nominative weekday", "Апреля, Понедельник", true},
		{"nominative month", "Январь, Вторник", true},
		{"accusative weekday", "Августа, Среду", true},
		{"lowercase", "мая, воскресенье", true},
		{"uppercase", "ДЕКАБРЯ, СУББОТА", true},
		{"no space after comma", "Мая,Воскресенье", true},
		{"spaces around comma", "Марта , Пятница", true},
		{"heading embedded in longer line", "12 Апреля, Понедельник — Благовещение", true},
		{"time line", "08:00 Литургия", false},
		{"no comma", "Апреля Понедельник", false},
		{"month only", "Апреля,", false},
		{"weekday only", ", Понедельник", false},
		{"unknown month", "Термидора, Понедельник", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeading(tt.line); got != tt.want {
				t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestVocabularyCovered(t *testing.T) {
	// Every month and weekday variant must be recognized when paired.
	for _, m := range monthForms {
		for _, mv := range m.Variants {
			for _, w := range weekdayForms {
				for _, wv := range w.Variants {
					line := mv + ", " + wv
					if !IsHeading(line) {
						t.Errorf("IsHeading(%q) = false, want true", line)
					}
				}
			}
		}
	}
}
