package appointment

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "08:30", want: 510},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "8:30", wantErr: true},
		{in: "08:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("ParseClock(%q) err = %v, want validation error", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClockOverflowsIntoHoursNotDays(t *testing.T) {
	if got := FormatClock(17*60 + 45 + 30); got != "18:15" {
		t.Fatalf("FormatClock = %q, want 18:15", got)
	}
	if got := FormatClock(23*60 + 30 + 60); got != "24:30" {
		t.Fatalf("FormatClock past midnight = %q, want 24:30", got)
	}

	end, err := Minutes("24:30")
	if err != nil || end != 24*60+30 {
		t.Fatalf("Minutes(24:30) = %d, %v", end, err)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"new starts during existing", "10:15", "10:45", "10:00", "10:30", true},
		{"existing starts during new", "09:45", "10:15", "10:00", "10:30", true},
		{"new contains existing", "09:00", "11:00", "10:00", "10:30", true},
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"back to back before", "09:30", "10:00", "10:00", "10:30", false},
		{"back to back after", "10:30", "11:00", "10:00", "10:30", false},
		{"disjoint", "08:00", "08:30", "15:00", "16:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlapsClock(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := overlapsClock(tc.s2, tc.e2, tc.s1, tc.e1); got != tc.want {
				t.Fatalf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStartsAtCombinesDateAndTime(t *testing.T) {
	ap := scheduled("a", "p", "14:30", "15:00")
	got, err := ap.StartsAt(time.UTC)
	if err != nil {
		t.Fatalf("StartsAt error: %v", err)
	}
	want := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("StartsAt = %v, want %v", got, want)
	}
}
