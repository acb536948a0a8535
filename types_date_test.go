package divsim

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer
		// for the timezone); this test also checks that the property remains true.
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"2025-13-01", Date{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseDate(%q) expected an error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		d        Date
		n        int
		expected Date
	}{
		{"plain month", NewDate(2024, time.March, 15), 1, NewDate(2024, time.April, 15)},
		{"year rollover", NewDate(2024, time.November, 15), 3, NewDate(2025, time.February, 15)},
		{"31st clamps to february leap", NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 29)},
		{"31st clamps to february", NewDate(2025, time.January, 31), 1, NewDate(2025, time.February, 28)},
		{"31st recovers in march", NewDate(2025, time.January, 31), 2, NewDate(2025, time.March, 31)},
		{"30th clamps in february only", NewDate(2025, time.January, 30), 1, NewDate(2025, time.February, 28)},
		{"negative months", NewDate(2025, time.March, 31), -1, NewDate(2025, time.February, 28)},
		{"zero is identity", NewDate(2025, time.June, 17), 0, NewDate(2025, time.June, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.AddMonths(tt.n); got != tt.expected {
				t.Errorf("%v.AddMonths(%d) = %v, want %v", tt.d, tt.n, got, tt.expected)
			}
		})
	}
}

func TestStartOfMonthly(t *testing.T) {
	d := NewDate(2024, time.February, 17)
	if got := d.StartOf(Monthly); got != NewDate(2024, time.February, 1) {
		t.Errorf("StartOf(Monthly) = %v", got)
	}
	if got := d.EndOf(Monthly); got != NewDate(2024, time.February, 29) {
		t.Errorf("EndOf(Monthly) = %v", got)
	}
}
