package appointment

import (
	"fmt"
	"strconv"
	"time"
)

const minutesPerDay = 24 * 60

// ParseClock parses a zero-padded "HH:MM" wall-clock string into minutes
// since midnight.
func ParseClock(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, validation("invalid_time")
	}
	h, err := strconv.Atoi(hm[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, validation("invalid_time")
	}
	m, err := strconv.Atoi(hm[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, validation("invalid_time")
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM". Values past the end
// of the day are not wrapped: 18:15 stays 18:15 and 24:30 stays 24:30.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Ranges that only
// touch at a boundary do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// Minutes parses a stored start or end time. Unlike ParseClock it accepts
// end times at or past midnight.
func Minutes(hm string) (int, error) {
	return clockOrOverflow(hm)
}

// clockOrOverflow accepts "HH:MM" with HH up to 47 so that end times
// produced by FormatClock past midnight still compare correctly.
func clockOrOverflow(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, validation("invalid_time")
	}
	h, err := strconv.Atoi(hm[:2])
	if err != nil || h < 0 || h > 47 {
		return 0, validation("invalid_time")
	}
	m, err := strconv.Atoi(hm[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, validation("invalid_time")
	}
	return h*60 + m, nil
}

func combine(date time.Time, hm string, loc *time.Location) (time.Time, error) {
	minutes, err := clockOrOverflow(hm)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minutes/60, minutes%60, 0, 0,
		loc,
	), nil
}
