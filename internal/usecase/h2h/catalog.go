package h2h

import "prodtrack/internal/domain/user"

type Kind struct {
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Metric   user.Metric `json:"metric"`
	Target   int         `json:"target"`
	Duration int         `json:"duration_days"`
}

var catalog = []Kind{
	{Type: "streak_duel", Title: "Streak Duel", Metric: user.MetricStreak, Target: 7, Duration: 7},
	{Type: "hour_sprint", Title: "Hour Sprint", Metric: user.MetricHours, Target: 20, Duration: 7},
	{Type: "task_race", Title: "Task Race", Metric: user.MetricTasks, Target: 15, Duration: 7},
	{Type: "explorer", Title: "Explorer", Metric: user.MetricActivities, Target: 5, Duration: 7},
	{Type: "chess_match", Title: "Chess Match", Metric: user.MetricChess, Target: 3, Duration: 7},
}

func Catalog() []Kind {
	return append([]Kind(nil), catalog...)
}

func lookup(kind string) (Kind, bool) {
	for _, k := range catalog {
		if k.Type == kind {
			return k, true
		}
	}
	return Kind{}, false
}
