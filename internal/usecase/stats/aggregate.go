package stats

import (
	"fmt"
	"sort"
	"time"

	"prodtrack/internal/domain/user"
)

const heatmapDays = 30

// HourPoint is an amount of hours attributed to one date string.
type HourPoint struct {
	Date  string
	Hours int
}

type GoalProgress struct {
	Activity string `json:"activity"`
	Goal     int    `json:"goal"`
	Actual   int    `json:"actual"`
}

func TaskPoints(tasks []user.Task) []HourPoint {
	points := make([]HourPoint, 0, len(tasks))
	for _, t := range tasks {
		points = append(points, HourPoint{Date: t.Date, Hours: t.Hours})
	}
	return points
}

func LogPoints(logs []user.DailyLog) []HourPoint {
	points := make([]HourPoint, 0, len(logs))
	for _, l := range logs {
		points = append(points, HourPoint{Date: l.Date, Hours: l.TotalHours()})
	}
	return points
}

// WeeklyTotals groups hours by ISO week, keyed like "2024-W01".
func WeeklyTotals(points []HourPoint) map[string]int {
	return groupBy(points, func(d time.Time) string {
		year, week := d.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	})
}

// MonthlyTotals groups hours by calendar month, keyed like "2024-01".
func MonthlyTotals(points []HourPoint) map[string]int {
	return groupBy(points, func(d time.Time) string {
		return fmt.Sprintf("%d-%02d", d.Year(), int(d.Month()))
	})
}

func groupBy(points []HourPoint, key func(time.Time) string) map[string]int {
	totals := map[string]int{}
	for _, p := range points {
		d, ok := ParseDay(p.Date)
		if !ok {
			continue
		}
		totals[key(d)] += p.Hours
	}
	return totals
}

// ThisWeek returns the logs dated on or after this week's Monday.
func ThisWeek(logs []user.DailyLog, now time.Time) []user.DailyLog {
	monday := WeekStart(now)
	week := []user.DailyLog{}
	for _, l := range logs {
		d, ok := ParseDay(l.Date)
		if !ok || d.Before(monday) {
			continue
		}
		week = append(week, l)
	}
	return week
}

// WeekActuals sums this week's hours per activity.
func WeekActuals(logs []user.DailyLog, now time.Time) map[string]int {
	actuals := map[string]int{}
	for _, l := range ThisWeek(logs, now) {
		for activity, h := range l.Log {
			actuals[activity] += h
		}
	}
	return actuals
}

// Heatmap maps each of the last 30 days to its total logged hours, omitting empty days.
func Heatmap(logs []user.DailyLog, now time.Time) map[string]int {
	today := Day(now)
	from := today.AddDate(0, 0, -(heatmapDays - 1))
	heat := map[string]int{}
	for _, l := range logs {
		d, ok := ParseDay(l.Date)
		if !ok || d.Before(from) || d.After(today) {
			continue
		}
		heat[l.Date] += l.TotalHours()
	}
	for date, total := range heat {
		if total == 0 {
			delete(heat, date)
		}
	}
	return heat
}

func GoalsVsActuals(goals map[string]int, logs []user.DailyLog, now time.Time) []GoalProgress {
	actuals := WeekActuals(logs, now)
	rows := make([]GoalProgress, 0, len(goals))
	for activity, goal := range goals {
		rows = append(rows, GoalProgress{Activity: activity, Goal: goal, Actual: actuals[activity]})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Activity < rows[j].Activity })
	return rows
}
