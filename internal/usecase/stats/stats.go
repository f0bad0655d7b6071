package stats

import (
	"context"
	"fmt"
	"time"

	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
)

type UserStore interface {
	View(ctx context.Context, fn func(users user.Users) error) error
}

type Dashboard struct {
	Tasks          []user.Task    `json:"tasks"`
	WeeklyTotals   map[string]int `json:"weekly_totals"`
	MonthlyTotals  map[string]int `json:"monthly_totals"`
	Streak         int            `json:"streak"`
	Badges         []Badge        `json:"badges"`
	Heatmap        map[string]int `json:"heatmap"`
	GoalsVsActuals []GoalProgress `json:"goals_vs_actuals"`
}

type StatsUseCase struct {
	store UserStore
	now   func() time.Time
}

func NewStatsUseCase(store UserStore, now func() time.Time) *StatsUseCase {
	return &StatsUseCase{store: store, now: now}
}

// Build computes every dashboard figure for u at the given instant.
func Build(u *user.User, now time.Time) Dashboard {
	return Dashboard{
		Tasks:          u.Tasks,
		WeeklyTotals:   WeeklyTotals(TaskPoints(u.Tasks)),
		MonthlyTotals:  MonthlyTotals(TaskPoints(u.Tasks)),
		Streak:         Streak(u.DailyLogs, now),
		Badges:         Badges(u, now),
		Heatmap:        Heatmap(u.DailyLogs, now),
		GoalsVsActuals: GoalsVsActuals(u.Goals, u.DailyLogs, now),
	}
}

func (s *StatsUseCase) Dashboard(ctx context.Context, email string) (Dashboard, error) {
	var dash Dashboard
	err := s.store.View(ctx, func(users user.Users) error {
		u, ok := users[user.NormalizeEmail(email)]
		if !ok {
			return errs.ErrUserNotFound
		}
		dash = Build(u, s.now())
		return nil
	})
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard for %s: %w", email, err)
	}
	return dash, nil
}
