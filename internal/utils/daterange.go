package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t.UTC(), nil
}

// BookingWindow normalizes an inclusive day range to its blocking interval:
// start at 00:00:00 and end at 23:59:59 of the respective calendar days.
func BookingWindow(start, end time.Time) (time.Time, time.Time) {
	windowStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
	return windowStart, windowEnd
}

// InclusiveDays counts billable days in a booking: both the start and end
// calendar days count, so a same-day booking is one day.
func InclusiveDays(start, end time.Time) int32 {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int32(endDay.Sub(startDay).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}
