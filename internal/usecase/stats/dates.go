package stats

import (
	"time"

	"prodtrack/internal/domain/user"
)

// Day truncates t to its calendar date in UTC so day arithmetic never crosses DST.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, bool) {
	d, err := time.Parse(user.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func FormatDay(t time.Time) string {
	return Day(t).Format(user.DateLayout)
}

// WeekStart returns the Monday of the week containing now.
func WeekStart(now time.Time) time.Time {
	today := Day(now)
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -offset)
}

func daysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
