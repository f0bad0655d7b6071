package challenge

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
)

type UserStore interface {
	Update(ctx context.Context, fn func(users user.Users) error) error
}

type Board struct {
	Active    []BoardEntry `json:"active"`
	Completed []string     `json:"completed"`
}

type BoardEntry struct {
	user.Challenge
	Done bool `json:"done"`
}

type ChallengeUseCase struct {
	store UserStore
	now   func() time.Time
	pick  func(n int) int
}

func NewChallengeUseCase(store UserStore, now func() time.Time) *ChallengeUseCase {
	return &ChallengeUseCase{store: store, now: now, pick: rand.IntN}
}

// WithPicker replaces the random template picker.
func (c *ChallengeUseCase) WithPicker(pick func(n int) int) *ChallengeUseCase {
	c.pick = pick
	return c
}

// Challenges assigns and updates the user's challenges and returns them.
func (c *ChallengeUseCase) Challenges(ctx context.Context, email string) (Board, error) {
	var board Board
	err := c.store.Update(ctx, func(users user.Users) error {
		u, ok := users[user.NormalizeEmail(email)]
		if !ok {
			return errs.ErrUserNotFound
		}
		Refresh(u, c.now(), c.pick)

		board.Completed = append([]string{}, u.Challenges.Completed...)
		board.Active = make([]BoardEntry, 0, len(u.Challenges.Active))
		for _, ch := range u.Challenges.Active {
			board.Active = append(board.Active, BoardEntry{
				Challenge: ch,
				Done:      slices.Contains(u.Challenges.Completed, ch.ID),
			})
		}
		return nil
	})
	if err != nil {
		return Board{}, fmt.Errorf("challenges for %s: %w", email, err)
	}
	return board, nil
}
