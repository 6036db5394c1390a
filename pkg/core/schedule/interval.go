package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

// FormatDate formats a time as a YYYY-MM-DD string
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// parseClock converts an HH:mm string to minutes since midnight
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", clock)
	}
	return hours*60 + minutes, nil
}

// ShiftDurationHours computes the length of a shift in hours from its HH:mm
// start and end times. An end time numerically before the start means the
// shift crosses midnight, so the duration is taken modulo 24 hours. Every
// validator and tracker uses this one helper so midnight semantics stay
// consistent.
func ShiftDurationHours(startTime, endTime string) (float64, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	minutes := (end - start + minutesPerDay) % minutesPerDay
	return float64(minutes) / 60, nil
}

// Overlaps reports whether the closed-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. It compares lexicographically, which is correct
// for both YYYY-MM-DD dates and HH:mm times.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// segmentsOverlap reports intersection of two half-open minute intervals
func segmentsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// TimeRangesOverlap reports whether two HH:mm time ranges intersect,
// treating an end at or before its start as crossing midnight. Because
// either range may wrap, the comparison is done on unwrapped minute
// intervals with the second range also tested shifted by a day in each
// direction.
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := parseClock(aStart)
	if err != nil {
		return false, err
	}
	ae, err := parseClock(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := parseClock(bStart)
	if err != nil {
		return false, err
	}
	be, err := parseClock(bEnd)
	if err != nil {
		return false, err
	}

	if ae <= as {
		ae += minutesPerDay
	}
	if be <= bs {
		be += minutesPerDay
	}

	return segmentsOverlap(as, ae, bs, be) ||
		segmentsOverlap(as, ae, bs+minutesPerDay, be+minutesPerDay) ||
		segmentsOverlap(as, ae, bs-minutesPerDay, be-minutesPerDay), nil
}

// WeekStart returns the most recent Sunday on or before the given date,
// as a YYYY-MM-DD string. Weeks start on Sunday.
func WeekStart(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(d.AddDate(0, 0, -int(d.Weekday()))), nil
}
