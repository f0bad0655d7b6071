package user

import (
	"encoding/json"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var StarterActivities = []string{"Study", "Exercise", "Reading", "Coding", "Meditation"}

// Users is the whole record store keyed by lowercase email.
type Users map[string]*User

type User struct {
	Email         string         `json:"-" bson:"_id"`
	Password      string         `json:"password,omitempty" bson:"password,omitempty"`
	Data          Profile        `json:"data" bson:"data"`
	Tasks         []Task         `json:"tasks" bson:"tasks"`
	DailyLogs     []DailyLog     `json:"daily_logs" bson:"daily_logs"`
	Activities    []string       `json:"activities" bson:"activities"`
	Goals         map[string]int `json:"goals" bson:"goals"`
	Notes         []Note         `json:"notes" bson:"notes"`
	Expenses      []Expense      `json:"expenses" bson:"expenses"`
	Friends       Friends        `json:"friends" bson:"friends"`
	H2HChallenges H2HBook        `json:"h2h_challenges" bson:"h2h_challenges"`
	Challenges    ChallengeBook  `json:"challenges" bson:"challenges"`
}

type Profile struct {
	Avatar        string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Name          string     `json:"name,omitempty" bson:"name,omitempty"`
	LastSeen      *time.Time `json:"last_seen,omitempty" bson:"last_seen,omitempty"`
	AIInsight     string     `json:"ai_insight,omitempty" bson:"ai_insight,omitempty"`
	AIInsightDate string     `json:"ai_insight_date,omitempty" bson:"ai_insight_date,omitempty"`

	// Extra holds every other key stored under "data" by older clients.
	Extra map[string]json.RawMessage `json:"-" bson:"extra,omitempty"`
}

type Task struct {
	Label string `json:"label" bson:"label"`
	Hours int    `json:"hours" bson:"hours"`
	Date  string `json:"date" bson:"date"`
}

type DailyLog struct {
	Date string         `json:"date" bson:"date"`
	Mood string         `json:"mood,omitempty" bson:"mood,omitempty"`
	Log  map[string]int `json:"log" bson:"log"`
}

// TotalHours sums the hour values of a single log entry.
func (l DailyLog) TotalHours() int {
	total := 0
	for _, h := range l.Log {
		total += h
	}
	return total
}

type Note struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
	Date string `json:"date" bson:"date"`
}

type Expense struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label" bson:"label"`
	Amount   float64 `json:"amount" bson:"amount"`
	Category string  `json:"category,omitempty" bson:"category,omitempty"`
	Date     string  `json:"date" bson:"date"`
}

type Friends struct {
	List            []string `json:"list" bson:"list"`
	PendingSent     []string `json:"pending_sent" bson:"pending_sent"`
	PendingReceived []string `json:"pending_received" bson:"pending_received"`
}

type ChallengeBook struct {
	Active    []Challenge `json:"active" bson:"active"`
	Completed []string    `json:"completed" bson:"completed"`
}

type H2HBook struct {
	Active    []H2HChallenge `json:"active" bson:"active"`
	Completed []H2HChallenge `json:"completed" bson:"completed"`
	Pending   []H2HChallenge `json:"pending" bson:"pending"`
}

func New(email, passwordHash, name string) *User {
	u := &User{
		Email:    NormalizeEmail(email),
		Password: passwordHash,
		Data:     Profile{Name: name},
	}
	u.Normalize()
	return u
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize fills every absent sub-structure with its empty form. Activities
// fall back to the starter set only when the key was never written.
func (u *User) Normalize() {
	if u.Tasks == nil {
		u.Tasks = []Task{}
	}
	if u.DailyLogs == nil {
		u.DailyLogs = []DailyLog{}
	}
	for i := range u.DailyLogs {
		if u.DailyLogs[i].Log == nil {
			u.DailyLogs[i].Log = map[string]int{}
		}
	}
	if u.Activities == nil {
		u.Activities = append([]string(nil), StarterActivities...)
	}
	if u.Goals == nil {
		u.Goals = map[string]int{}
	}
	if u.Notes == nil {
		u.Notes = []Note{}
	}
	if u.Expenses == nil {
		u.Expenses = []Expense{}
	}
	u.Friends.normalize()
	u.H2HChallenges.normalize()
	if u.Challenges.Active == nil {
		u.Challenges.Active = []Challenge{}
	}
	if u.Challenges.Completed == nil {
		u.Challenges.Completed = []string{}
	}
}

func (f *Friends) normalize() {
	if f.List == nil {
		f.List = []string{}
	}
	if f.PendingSent == nil {
		f.PendingSent = []string{}
	}
	if f.PendingReceived == nil {
		f.PendingReceived = []string{}
	}
}

func (b *H2HBook) normalize() {
	if b.Active == nil {
		b.Active = []H2HChallenge{}
	}
	if b.Completed == nil {
		b.Completed = []H2HChallenge{}
	}
	if b.Pending == nil {
		b.Pending = []H2HChallenge{}
	}
}

// DisplayName falls back to the email when no name was set.
func (u *User) DisplayName() string {
	if u.Data.Name != "" {
		return u.Data.Name
	}
	return u.Email
}
