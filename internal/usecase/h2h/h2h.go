package h2h

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"prodtrack/internal/domain/event"
	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
	"prodtrack/internal/usecase/stats"
)

const (
	ResponseAccept  = "accept"
	ResponseDecline = "decline"
)

type UserStore interface {
	Update(ctx context.Context, fn func(users user.Users) error) error
}

type Notifier interface {
	Notify(email string, ev event.Event)
}

type H2HUseCase struct {
	store    UserStore
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

func NewH2HUseCase(store UserStore, notifier Notifier, now func() time.Time) *H2HUseCase {
	return &H2HUseCase{
		store:    store,
		notifier: notifier,
		now:      now,
		newID:    shortID,
	}
}

func shortID() string {
	return uuid.New().String()[:8]
}

// Create sends a challenge to a friend. The new record is appended to the
// challenger's active list and the opponent's pending list.
func (h *H2HUseCase) Create(ctx context.Context, challengerEmail, opponentEmail, kind string) (user.H2HChallenge, error) {
	challengerEmail = user.NormalizeEmail(challengerEmail)
	opponentEmail = user.NormalizeEmail(opponentEmail)

	if opponentEmail == "" {
		return user.H2HChallenge{}, errs.ErrEmptyEmail
	}
	if opponentEmail == challengerEmail {
		return user.H2HChallenge{}, errs.ErrSelfChallenge
	}
	k, ok := lookup(kind)
	if !ok {
		return user.H2HChallenge{}, errs.ErrUnknownChallenge
	}

	var created user.H2HChallenge
	err := h.store.Update(ctx, func(users user.Users) error {
		challenger, ok := users[challengerEmail]
		if !ok {
			return errs.ErrUserNotFound
		}
		opponent, ok := users[opponentEmail]
		if !ok {
			return errs.ErrUserNotFound
		}
		if !slices.Contains(challenger.Friends.List, opponentEmail) {
			return errs.ErrNotFriends
		}

		today := stats.Day(h.now())
		created = user.H2HChallenge{
			ID:         h.uniqueID(challenger, opponent),
			Challenger: challengerEmail,
			Opponent:   opponentEmail,
			Type:       k.Type,
			Title:      k.Title,
			Target:     k.Target,
			Metric:     k.Metric,
			StartDate:  stats.FormatDay(today),
			EndDate:    stats.FormatDay(today.AddDate(0, 0, k.Duration)),
			Status:     user.H2HPending,
		}
		challenger.H2HChallenges.Active = append(challenger.H2HChallenges.Active, created)
		opponent.H2HChallenges.Pending = append(opponent.H2HChallenges.Pending, created)
		return nil
	})
	if err != nil {
		return user.H2HChallenge{}, fmt.Errorf("create h2h: %w", err)
	}

	h.notify(opponentEmail, event.Event{Type: event.H2HCreated, From: challengerEmail, ChallengeID: created.ID})
	return created, nil
}

// Respond accepts or declines a pending challenge. An id that is not pending
// for this user is a no-op, and so is a challenger copy that cannot be found.
func (h *H2HUseCase) Respond(ctx context.Context, email, challengeID, response string) error {
	email = user.NormalizeEmail(email)
	if response != ResponseAccept && response != ResponseDecline {
		return errs.ErrUnknownResponse
	}

	var (
		responded bool
		entry     user.H2HChallenge
	)
	err := h.store.Update(ctx, func(users user.Users) error {
		u, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		idx := indexOf(u.H2HChallenges.Pending, challengeID)
		if idx < 0 {
			return nil
		}
		entry = u.H2HChallenges.Pending[idx]
		u.H2HChallenges.Pending = slices.Delete(u.H2HChallenges.Pending, idx, idx+1)
		responded = true

		challenger := users[entry.Challenger]

		if response == ResponseDecline {
			if challenger != nil {
				challenger.H2HChallenges.Active = without(challenger.H2HChallenges.Active, entry.ID)
			}
			return nil
		}

		today := stats.Day(h.now())
		duration := durationDays(entry)
		entry.Status = user.H2HActive
		entry.StartDate = stats.FormatDay(today)
		entry.EndDate = stats.FormatDay(today.AddDate(0, 0, duration))
		u.H2HChallenges.Active = append(u.H2HChallenges.Active, entry)

		if challenger != nil {
			if i := indexOf(challenger.H2HChallenges.Active, entry.ID); i >= 0 {
				challenger.H2HChallenges.Active[i] = entry
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("respond h2h %s: %w", challengeID, err)
	}

	if responded {
		evType := event.H2HDeclined
		if response == ResponseAccept {
			evType = event.H2HAccepted
		}
		h.notify(entry.Challenger, event.Event{Type: evType, From: email, ChallengeID: entry.ID})
	}
	return nil
}

// List refreshes progress of the user's running challenges and returns the user's book.
func (h *H2HUseCase) List(ctx context.Context, email string) (user.H2HBook, error) {
	email = user.NormalizeEmail(email)

	var (
		book     user.H2HBook
		finished []user.H2HChallenge
	)
	err := h.store.Update(ctx, func(users user.Users) error {
		u, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		finished = Advance(users, u, h.now())
		book = user.H2HBook{
			Active:    slices.Clone(u.H2HChallenges.Active),
			Completed: slices.Clone(u.H2HChallenges.Completed),
			Pending:   slices.Clone(u.H2HChallenges.Pending),
		}
		return nil
	})
	if err != nil {
		return user.H2HBook{}, fmt.Errorf("list h2h: %w", err)
	}

	for _, ch := range finished {
		other := ch.Opponent
		if other == email {
			other = ch.Challenger
		}
		h.notify(other, event.Event{Type: event.H2HCompleted, From: email, ChallengeID: ch.ID})
	}
	return book, nil
}

func (h *H2HUseCase) uniqueID(a, b *user.User) string {
	for {
		id := h.newID()
		if !known(a, id) && !known(b, id) {
			return id
		}
	}
}

func (h *H2HUseCase) notify(email string, ev event.Event) {
	if h.notifier != nil {
		h.notifier.Notify(email, ev)
	}
}

func known(u *user.User, id string) bool {
	return indexOf(u.H2HChallenges.Active, id) >= 0 ||
		indexOf(u.H2HChallenges.Pending, id) >= 0 ||
		indexOf(u.H2HChallenges.Completed, id) >= 0
}

func indexOf(list []user.H2HChallenge, id string) int {
	return slices.IndexFunc(list, func(c user.H2HChallenge) bool { return c.ID == id })
}

func without(list []user.H2HChallenge, id string) []user.H2HChallenge {
	return slices.DeleteFunc(list, func(c user.H2HChallenge) bool { return c.ID == id })
}

func durationDays(ch user.H2HChallenge) int {
	if k, ok := lookup(ch.Type); ok {
		return k.Duration
	}
	start, okStart := stats.ParseDay(ch.StartDate)
	end, okEnd := stats.ParseDay(ch.EndDate)
	if okStart && okEnd && end.After(start) {
		return int(end.Sub(start).Hours() / 24)
	}
	return 7
}
