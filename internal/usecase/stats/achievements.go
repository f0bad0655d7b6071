package stats

import (
	"time"

	"prodtrack/internal/domain/user"
)

type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var (
	badgeRookie      = Badge{ID: "rookie", Icon: "🌱", Title: "Rookie", Description: "Logged your first day"}
	badgeOnFire      = Badge{ID: "on_fire", Icon: "🔥", Title: "On Fire", Description: "3-day streak"}
	badgeBeastMode   = Badge{ID: "beast_mode", Icon: "💪", Title: "Beast Mode", Description: "10+ hours in a single day"}
	badgeConsistency = Badge{ID: "consistency_king", Icon: "👑", Title: "Consistency King", Description: "7-day streak"}
)

// Badges recomputes the unlocked badges from the current record. Nothing is
// persisted, so a badge disappears again when its condition stops holding.
func Badges(u *user.User, now time.Time) []Badge {
	badges := []Badge{}
	streak := Streak(u.DailyLogs, now)

	if len(u.DailyLogs) >= 1 {
		badges = append(badges, badgeRookie)
	}
	if streak >= 3 {
		badges = append(badges, badgeOnFire)
	}
	for _, l := range u.DailyLogs {
		if l.TotalHours() >= 10 {
			badges = append(badges, badgeBeastMode)
			break
		}
	}
	if streak >= 7 {
		badges = append(badges, badgeConsistency)
	}
	return badges
}
