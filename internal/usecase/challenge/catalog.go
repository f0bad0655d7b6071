package challenge

import "prodtrack/internal/domain/user"

type template struct {
	ID          string
	Title       string
	Description string
	Target      int
	Metric      user.Metric
}

// Template IDs are stored as prefixes of instance IDs; keep them stable.
var catalog = map[user.ChallengeType][]template{
	user.ChallengeDaily: {
		{ID: "deep_work", Title: "Deep Work", Description: "Log at least 2 hours of activity today", Target: 2, Metric: user.MetricHours},
		{ID: "task_crusher", Title: "Task Crusher", Description: "Record 3 tasks today", Target: 3, Metric: user.MetricTasks},
		{ID: "keep_alive", Title: "Keep It Alive", Description: "Keep your streak going today", Target: 1, Metric: user.MetricStreak},
	},
	user.ChallengeWeekly: {
		{ID: "marathon", Title: "Marathon", Description: "Log 15 hours this week", Target: 15, Metric: user.MetricHours},
		{ID: "well_rounded", Title: "Well Rounded", Description: "Log 4 different activities this week", Target: 4, Metric: user.MetricActivities},
		{ID: "show_up", Title: "Show Up", Description: "Log activity on 5 days this week", Target: 5, Metric: user.MetricDays},
	},
}

var lanes = []struct {
	kind     user.ChallengeType
	lifetime int
}{
	{kind: user.ChallengeDaily, lifetime: 1},
	{kind: user.ChallengeWeekly, lifetime: 7},
}
