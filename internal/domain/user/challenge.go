package user

type ChallengeType string

const (
	ChallengeDaily  ChallengeType = "daily"
	ChallengeWeekly ChallengeType = "weekly"
)

type Metric string

const (
	MetricHours      Metric = "hours"
	MetricTasks      Metric = "tasks"
	MetricStreak     Metric = "streak"
	MetricActivities Metric = "activities"
	MetricDays       Metric = "days"
	MetricChess      Metric = "chess"
)

// Challenge is a self-challenge instance living in one lane.
type Challenge struct {
	ID          string        `json:"id" bson:"id"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description" bson:"description"`
	Target      int           `json:"target" bson:"target"`
	Metric      Metric        `json:"metric" bson:"metric"`
	Type        ChallengeType `json:"type" bson:"type"`
	Progress    int           `json:"progress" bson:"progress"`
	Expires     string        `json:"expires" bson:"expires"`
}

type H2HStatus string

const (
	H2HPending   H2HStatus = "pending"
	H2HActive    H2HStatus = "active"
	H2HCompleted H2HStatus = "completed"
)

// H2HChallenge is mirrored into both participants' records.
type H2HChallenge struct {
	ID                 string    `json:"id" bson:"id"`
	Challenger         string    `json:"challenger" bson:"challenger"`
	Opponent           string    `json:"opponent" bson:"opponent"`
	Type               string    `json:"type" bson:"type"`
	Title              string    `json:"title" bson:"title"`
	Target             int       `json:"target" bson:"target"`
	Metric             Metric    `json:"metric" bson:"metric"`
	StartDate          string    `json:"start_date" bson:"start_date"`
	EndDate            string    `json:"end_date" bson:"end_date"`
	ChallengerProgress int       `json:"challenger_progress" bson:"challenger_progress"`
	OpponentProgress   int       `json:"opponent_progress" bson:"opponent_progress"`
	Status             H2HStatus `json:"status" bson:"status"`
	Winner             *string   `json:"winner" bson:"winner"`
}
