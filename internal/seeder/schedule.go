package seeder

import "time"

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

// SchoolDays walks forward day by day from start, skipping weekends, and
// collects up to n school-day dates.
func SchoolDays(start time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	d := start
	for len(days) < n {
		if !isWeekend(d) {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// SchoolDaysBack walks backward from today collecting n weekdays, oldest
// first. Used when no academic-year start date is resolvable.
func SchoolDaysBack(today time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	d := today
	for len(days) < n {
		if !isWeekend(d) {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	// Reverse into chronological order.
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}
