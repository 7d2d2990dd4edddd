package domain

import "time"

// NextRunAfter computes when the template should fire next, strictly after
// the given instant. Missing schedule fields fall back to 09:00, Monday,
// and the 1st of the month; a monthly day beyond the month's length clamps
// to the last day.
func (r *RecurringTask) NextRunAfter(from time.Time) time.Time {
	hour, minute := 9, 0
	if len(r.Schedule.Time) == 5 && r.Schedule.Time[2] == ':' {
		if t, err := time.Parse("15:04", r.Schedule.Time); err == nil {
			hour, minute = t.Hour(), t.Minute()
		}
	}

	switch r.Frequency {
	case FrequencyDaily:
		next := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())
		if !next.After(from) {
			next = next.AddDate(0, 0, 1)
		}
		return next

	case FrequencyMonthly:
		day := 1
		if r.Schedule.DayOfMonth != nil {
			day = *r.Schedule.DayOfMonth
		}
		next := monthlyOccurrence(from.Year(), from.Month(), day, hour, minute, from.Location())
		if !next.After(from) {
			year, month := from.Year(), from.Month()+1
			next = monthlyOccurrence(year, month, day, hour, minute, from.Location())
		}
		return next

	default: // weekly
		target := time.Monday
		if r.Schedule.DayOfWeek != nil {
			target = time.Weekday(*r.Schedule.DayOfWeek % 7)
		}
		next := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())
		for next.Weekday() != target || !next.After(from) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}

func monthlyOccurrence(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}
