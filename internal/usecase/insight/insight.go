package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
	"prodtrack/internal/usecase/stats"
)

const (
	Fallback = "Stay consistent: small daily progress compounds into big results."

	preamble = "You are a friendly productivity coach. Based on the user's recent tasks " +
		"and activity logs below, give one short, concrete tip (max 2 sentences) to help " +
		"them be more productive tomorrow.\n\n"

	recentTasks = 10
	recentLogs  = 7
)

type LlmStore interface {
	SendRequestToLlm(ctx context.Context, request string) (response string, err error)
}

type UserStore interface {
	View(ctx context.Context, fn func(users user.Users) error) error
	Update(ctx context.Context, fn func(users user.Users) error) error
}

type FallbackCounter interface {
	AIFallback()
}

type InsightUseCase struct {
	store   UserStore
	llm     LlmStore
	log     *zap.SugaredLogger
	counter FallbackCounter
	now     func() time.Time
}

func NewInsightUseCase(store UserStore, llm LlmStore, log *zap.SugaredLogger, counter FallbackCounter, now func() time.Time) *InsightUseCase {
	return &InsightUseCase{store: store, llm: llm, log: log, counter: counter, now: now}
}

// Tip returns today's cached tip or asks the model for a new one. Model
// failures are logged and answered with Fallback, which is never cached.
func (i *InsightUseCase) Tip(ctx context.Context, email string) (string, error) {
	email = user.NormalizeEmail(email)
	today := stats.FormatDay(i.now())

	var (
		cached string
		prompt string
	)
	err := i.store.View(ctx, func(users user.Users) error {
		u, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		if u.Data.AIInsightDate == today && u.Data.AIInsight != "" {
			cached = u.Data.AIInsight
			return nil
		}
		prompt = BuildPrompt(u)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("insight for %s: %w", email, err)
	}
	if cached != "" {
		return cached, nil
	}

	tip, ok := i.ask(ctx, prompt)
	if !ok {
		return tip, nil
	}

	err = i.store.Update(ctx, func(users user.Users) error {
		if u, ok := users[email]; ok {
			u.Data.AIInsight = tip
			u.Data.AIInsightDate = today
		}
		return nil
	})
	if err != nil {
		i.log.Errorf("insight: failed to cache tip for %s: %v", email, err)
	}
	return tip, nil
}

// Ask forwards a free-form prompt, degrading to Fallback on any failure.
func (i *InsightUseCase) Ask(ctx context.Context, prompt string) string {
	tip, _ := i.ask(ctx, strings.TrimSpace(prompt))
	return tip
}

func (i *InsightUseCase) ask(ctx context.Context, prompt string) (string, bool) {
	if prompt == "" {
		return Fallback, false
	}
	resp, err := i.llm.SendRequestToLlm(ctx, prompt)
	if err == nil && strings.TrimSpace(resp) != "" {
		return strings.TrimSpace(resp), true
	}
	if err != nil {
		i.log.Warnf("insight: llm request failed: %v", err)
	} else {
		i.log.Warn("insight: llm returned an empty answer")
	}
	if i.counter != nil {
		i.counter.AIFallback()
	}
	return Fallback, false
}

// BuildPrompt summarizes the latest tasks and logs after the coaching preamble.
func BuildPrompt(u *user.User) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	sb.WriteString("Recent tasks:\n")
	tasks := u.Tasks
	if len(tasks) > recentTasks {
		tasks = tasks[len(tasks)-recentTasks:]
	}
	if len(tasks) == 0 {
		sb.WriteString("- none\n")
	}
	for _, t := range tasks {
		fmt.Fprintf(&sb, "- %s: %s (%dh)\n", t.Date, t.Label, t.Hours)
	}

	sb.WriteString("Recent activity logs:\n")
	logs := u.DailyLogs
	if len(logs) > recentLogs {
		logs = logs[len(logs)-recentLogs:]
	}
	if len(logs) == 0 {
		sb.WriteString("- none\n")
	}
	for _, l := range logs {
		activities := make([]string, 0, len(l.Log))
		for name := range l.Log {
			activities = append(activities, name)
		}
		sort.Strings(activities)
		parts := make([]string, 0, len(activities))
		for _, name := range activities {
			parts = append(parts, fmt.Sprintf("%s %dh", name, l.Log[name]))
		}
		fmt.Fprintf(&sb, "- %s: %s", l.Date, strings.Join(parts, ", "))
		if l.Mood != "" {
			fmt.Fprintf(&sb, " (mood: %s)", l.Mood)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
