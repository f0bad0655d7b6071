package journal

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
	"prodtrack/internal/usecase/stats"
)

type UserStore interface {
	View(ctx context.Context, fn func(users user.Users) error) error
	Update(ctx context.Context, fn func(users user.Users) error) error
}

type JournalUseCase struct {
	store UserStore
	now   func() time.Time
}

func NewJournalUseCase(store UserStore, now func() time.Time) *JournalUseCase {
	return &JournalUseCase{store: store, now: now}
}

func (j *JournalUseCase) RecordTask(ctx context.Context, email, label string, hours int, date string) (user.Task, error) {
	label = strings.TrimSpace(label)
	if label == "" || hours < 0 {
		return user.Task{}, errs.ErrInvalidInput
	}
	date, err := j.resolveDate(date)
	if err != nil {
		return user.Task{}, err
	}

	task := user.Task{Label: label, Hours: hours, Date: date}
	err = j.mutate(ctx, email, func(u *user.User) error {
		u.Tasks = append(u.Tasks, task)
		return nil
	})
	if err != nil {
		return user.Task{}, fmt.Errorf("record task: %w", err)
	}
	return task, nil
}

// RecordDailyLog appends a log entry; unknown activity names join the
// user's activity list. Several entries for the same date are allowed.
func (j *JournalUseCase) RecordDailyLog(ctx context.Context, email, date, mood string, hours map[string]int) (user.DailyLog, error) {
	date, err := j.resolveDate(date)
	if err != nil {
		return user.DailyLog{}, err
	}
	entry := user.DailyLog{Date: date, Mood: strings.TrimSpace(mood), Log: map[string]int{}}
	for activity, h := range hours {
		activity = strings.TrimSpace(activity)
		if activity == "" || h < 0 {
			return user.DailyLog{}, errs.ErrInvalidInput
		}
		entry.Log[activity] += h
	}

	err = j.mutate(ctx, email, func(u *user.User) error {
		u.DailyLogs = append(u.DailyLogs, entry)
		for activity := range entry.Log {
			if !slices.Contains(u.Activities, activity) {
				u.Activities = append(u.Activities, activity)
			}
		}
		return nil
	})
	if err != nil {
		return user.DailyLog{}, fmt.Errorf("record daily log: %w", err)
	}
	return entry, nil
}

func (j *JournalUseCase) Activities(ctx context.Context, email string) ([]string, error) {
	var activities []string
	err := j.store.View(ctx, func(users user.Users) error {
		u, ok := users[user.NormalizeEmail(email)]
		if !ok {
			return errs.ErrUserNotFound
		}
		activities = slices.Clone(u.Activities)
		return nil
	})
	return activities, err
}

func (j *JournalUseCase) AddActivity(ctx context.Context, email, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidInput
	}
	var activities []string
	err := j.mutate(ctx, email, func(u *user.User) error {
		if !slices.Contains(u.Activities, name) {
			u.Activities = append(u.Activities, name)
		}
		activities = slices.Clone(u.Activities)
		return nil
	})
	return activities, err
}

// SetGoal sets the weekly target for an activity; zero removes it.
func (j *JournalUseCase) SetGoal(ctx context.Context, email, activity string, hours int) (map[string]int, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" || hours < 0 {
		return nil, errs.ErrInvalidInput
	}
	var goals map[string]int
	err := j.mutate(ctx, email, func(u *user.User) error {
		if hours == 0 {
			delete(u.Goals, activity)
		} else {
			u.Goals[activity] = hours
		}
		goals = make(map[string]int, len(u.Goals))
		for k, v := range u.Goals {
			goals[k] = v
		}
		return nil
	})
	return goals, err
}

func (j *JournalUseCase) AddNote(ctx context.Context, email, text string) (user.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return user.Note{}, errs.ErrInvalidInput
	}
	note := user.Note{ID: uuid.NewString(), Text: text, Date: stats.FormatDay(j.now())}
	err := j.mutate(ctx, email, func(u *user.User) error {
		u.Notes = append(u.Notes, note)
		return nil
	})
	return note, err
}

// DeleteNote is a no-op for unknown ids.
func (j *JournalUseCase) DeleteNote(ctx context.Context, email, id string) error {
	return j.mutate(ctx, email, func(u *user.User) error {
		u.Notes = slices.DeleteFunc(u.Notes, func(n user.Note) bool { return n.ID == id })
		return nil
	})
}

func (j *JournalUseCase) AddExpense(ctx context.Context, email, label string, amount float64, category, date string) (user.Expense, error) {
	label = strings.TrimSpace(label)
	if label == "" || amount < 0 {
		return user.Expense{}, errs.ErrInvalidInput
	}
	date, err := j.resolveDate(date)
	if err != nil {
		return user.Expense{}, err
	}
	expense := user.Expense{
		ID:       uuid.NewString(),
		Label:    label,
		Amount:   amount,
		Category: strings.TrimSpace(category),
		Date:     date,
	}
	err = j.mutate(ctx, email, func(u *user.User) error {
		u.Expenses = append(u.Expenses, expense)
		return nil
	})
	return expense, err
}

// UpdateProfile overwrites only the non-empty fields.
func (j *JournalUseCase) UpdateProfile(ctx context.Context, email, name, avatar string) (user.Profile, error) {
	var profile user.Profile
	err := j.mutate(ctx, email, func(u *user.User) error {
		if name = strings.TrimSpace(name); name != "" {
			u.Data.Name = name
		}
		if avatar = strings.TrimSpace(avatar); avatar != "" {
			u.Data.Avatar = avatar
		}
		profile = u.Data
		return nil
	})
	return profile, err
}

func (j *JournalUseCase) mutate(ctx context.Context, email string, fn func(u *user.User) error) error {
	return j.store.Update(ctx, func(users user.Users) error {
		u, ok := users[user.NormalizeEmail(email)]
		if !ok {
			return errs.ErrUserNotFound
		}
		return fn(u)
	})
}

func (j *JournalUseCase) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return stats.FormatDay(j.now()), nil
	}
	if _, ok := stats.ParseDay(date); !ok {
		return "", errs.ErrInvalidDate
	}
	return date, nil
}
