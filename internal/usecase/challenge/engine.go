package challenge

import (
	"slices"
	"time"

	"prodtrack/internal/domain/user"
	"prodtrack/internal/usecase/stats"
)

// Refresh prunes expired challenges, fills empty lanes from the catalog,
// recomputes progress and records completions. pick(n) must return a value in [0, n).
//
// Completed challenges stay in the active list and keep receiving progress
// updates until they expire; completion is tracked only by id.
func Refresh(u *user.User, now time.Time, pick func(n int) int) {
	today := stats.Day(now)

	prune(u, today)
	assign(u, today, pick)

	for i := range u.Challenges.Active {
		c := &u.Challenges.Active[i]
		c.Progress = progress(u, *c, now)
		if c.Progress >= c.Target && !slices.Contains(u.Challenges.Completed, c.ID) {
			u.Challenges.Completed = append(u.Challenges.Completed, c.ID)
		}
	}
}

func prune(u *user.User, today time.Time) {
	u.Challenges.Active = slices.DeleteFunc(u.Challenges.Active, func(c user.Challenge) bool {
		expires, ok := stats.ParseDay(c.Expires)
		return !ok || expires.Before(today)
	})
}

func assign(u *user.User, today time.Time, pick func(n int) int) {
	for _, lane := range lanes {
		if hasLane(u.Challenges.Active, lane.kind) {
			continue
		}
		templates := catalog[lane.kind]
		t := templates[pick(len(templates))]
		u.Challenges.Active = append(u.Challenges.Active, user.Challenge{
			ID:          t.ID + "-" + stats.FormatDay(today),
			Title:       t.Title,
			Description: t.Description,
			Target:      t.Target,
			Metric:      t.Metric,
			Type:        lane.kind,
			Progress:    0,
			Expires:     stats.FormatDay(today.AddDate(0, 0, lane.lifetime)),
		})
	}
}

func hasLane(active []user.Challenge, kind user.ChallengeType) bool {
	for _, c := range active {
		if c.Type == kind {
			return true
		}
	}
	return false
}

func progress(u *user.User, c user.Challenge, now time.Time) int {
	today := stats.FormatDay(now)

	switch c.Metric {
	case user.MetricHours:
		total := 0
		if c.Type == user.ChallengeDaily {
			for _, l := range u.DailyLogs {
				if l.Date == today {
					total += l.TotalHours()
				}
			}
			return total
		}
		for _, l := range stats.ThisWeek(u.DailyLogs, now) {
			total += l.TotalHours()
		}
		return total
	case user.MetricTasks:
		count := 0
		for _, t := range u.Tasks {
			if t.Date == today {
				count++
			}
		}
		return count
	case user.MetricStreak:
		if stats.Streak(u.DailyLogs, now) > 0 {
			return 1
		}
		return 0
	case user.MetricActivities:
		seen := map[string]struct{}{}
		for _, l := range stats.ThisWeek(u.DailyLogs, now) {
			for activity := range l.Log {
				seen[activity] = struct{}{}
			}
		}
		return len(seen)
	case user.MetricDays:
		days := 0
		for _, l := range stats.ThisWeek(u.DailyLogs, now) {
			if l.TotalHours() > 0 {
				days++
			}
		}
		return days
	default:
		return c.Progress
	}
}
