package h2h

import (
	"time"

	"prodtrack/internal/domain/user"
	"prodtrack/internal/usecase/stats"
)

// Advance recomputes both sides' progress for every running challenge of u,
// completes the ones that reached their target or passed their end date and
// mirrors the result into both participants. It returns the completed ones.
func Advance(users user.Users, u *user.User, now time.Time) []user.H2HChallenge {
	var finished []user.H2HChallenge

	ids := make([]string, 0, len(u.H2HChallenges.Active))
	for _, ch := range u.H2HChallenges.Active {
		if ch.Status == user.H2HActive {
			ids = append(ids, ch.ID)
		}
	}

	for _, id := range ids {
		idx := indexOf(u.H2HChallenges.Active, id)
		if idx < 0 {
			continue
		}
		ch := u.H2HChallenges.Active[idx]
		challenger := users[ch.Challenger]
		opponent := users[ch.Opponent]

		if ch.Metric != user.MetricChess {
			if challenger != nil {
				ch.ChallengerProgress = measure(challenger, ch, now)
			}
			if opponent != nil {
				ch.OpponentProgress = measure(opponent, ch, now)
			}
		}

		if finishedBy(ch, now) {
			ch.Status = user.H2HCompleted
			ch.Winner = winner(ch)
			finished = append(finished, ch)
		}

		mirror(challenger, ch)
		mirror(opponent, ch)
	}
	return finished
}

func mirror(u *user.User, ch user.H2HChallenge) {
	if u == nil {
		return
	}
	idx := indexOf(u.H2HChallenges.Active, ch.ID)
	if idx < 0 {
		return
	}
	if ch.Status != user.H2HCompleted {
		u.H2HChallenges.Active[idx] = ch
		return
	}
	u.H2HChallenges.Active = without(u.H2HChallenges.Active, ch.ID)
	if indexOf(u.H2HChallenges.Completed, ch.ID) < 0 {
		u.H2HChallenges.Completed = append(u.H2HChallenges.Completed, ch)
	}
}

func finishedBy(ch user.H2HChallenge, now time.Time) bool {
	if ch.ChallengerProgress >= ch.Target || ch.OpponentProgress >= ch.Target {
		return true
	}
	end, ok := stats.ParseDay(ch.EndDate)
	return ok && stats.Day(now).After(end)
}

func winner(ch user.H2HChallenge) *string {
	switch {
	case ch.ChallengerProgress > ch.OpponentProgress:
		w := ch.Challenger
		return &w
	case ch.OpponentProgress > ch.ChallengerProgress:
		w := ch.Opponent
		return &w
	default:
		return nil
	}
}

// measure computes one participant's progress within the challenge window.
// A streak only counts logged days inside the window and ends at today or at
// the end date, whichever comes first.
func measure(u *user.User, ch user.H2HChallenge, now time.Time) int {
	start, okStart := stats.ParseDay(ch.StartDate)
	end, okEnd := stats.ParseDay(ch.EndDate)
	if !okStart || !okEnd {
		return 0
	}
	inWindow := func(date string) bool {
		d, ok := stats.ParseDay(date)
		return ok && !d.Before(start) && !d.After(end)
	}

	switch ch.Metric {
	case user.MetricStreak:
		var logs []user.DailyLog
		for _, l := range u.DailyLogs {
			if inWindow(l.Date) {
				logs = append(logs, l)
			}
		}
		ref := now
		if stats.Day(now).After(end) {
			ref = end
		}
		return stats.Streak(logs, ref)
	case user.MetricHours:
		total := 0
		for _, l := range u.DailyLogs {
			if inWindow(l.Date) {
				total += l.TotalHours()
			}
		}
		return total
	case user.MetricTasks:
		count := 0
		for _, t := range u.Tasks {
			if inWindow(t.Date) {
				count++
			}
		}
		return count
	case user.MetricActivities:
		seen := map[string]struct{}{}
		for _, l := range u.DailyLogs {
			if !inWindow(l.Date) {
				continue
			}
			for activity := range l.Log {
				seen[activity] = struct{}{}
			}
		}
		return len(seen)
	default:
		return 0
	}
}
