package leave

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

// CountWorkingDays counts the days in [start, end] that are neither weekend days nor in holidays.
// holidays is keyed by leave.DateKey.
func CountWorkingDays(start, end time.Time, holidays map[string]struct{}) int {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		if _, ok := holidays[leave.DateKey(day)]; ok {
			continue
		}
		count++
	}
	return count
}

// HolidaySet indexes active holidays by date key.
func HolidaySet(holidays []leave.Holiday) map[string]struct{} {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		if !h.IsActive {
			continue
		}
		set[leave.DateKey(h.Date)] = struct{}{}
	}
	return set
}

// dateOnly drops the clock and location, keeping the calendar date as UTC midnight.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween is the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
