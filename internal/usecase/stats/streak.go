package stats

import (
	"sort"
	"time"

	"prodtrack/internal/domain/user"
)

// Streak counts consecutive logged days ending today or yesterday.
// An unparseable date stops the walk and keeps what was counted so far.
func Streak(logs []user.DailyLog, now time.Time) int {
	seen := make(map[string]struct{}, len(logs))
	dates := make([]string, 0, len(logs))
	for _, l := range logs {
		if _, ok := seen[l.Date]; ok {
			continue
		}
		seen[l.Date] = struct{}{}
		dates = append(dates, l.Date)
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	latest, ok := ParseDay(dates[0])
	if !ok {
		return 0
	}
	if daysBetween(Day(now), latest) > 1 {
		return 0
	}

	streak := 1
	prev := latest
	for _, s := range dates[1:] {
		cur, ok := ParseDay(s)
		if !ok {
			break
		}
		if daysBetween(prev, cur) != 1 {
			break
		}
		streak++
		prev = cur
	}
	return streak
}
