package friends

import (
	"context"
	"fmt"
	"slices"
	"time"

	"prodtrack/internal/domain/event"
	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
	"prodtrack/internal/usecase/stats"
)

type UserStore interface {
	View(ctx context.Context, fn func(users user.Users) error) error
	Update(ctx context.Context, fn func(users user.Users) error) error
}

type Notifier interface {
	Notify(email string, ev event.Event)
}

type Friend struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Streak int    `json:"streak"`
}

type Overview struct {
	Friends         []Friend `json:"friends"`
	PendingSent     []string `json:"pending_sent"`
	PendingReceived []string `json:"pending_received"`
}

type FriendsUseCase struct {
	store    UserStore
	notifier Notifier
	now      func() time.Time
}

func NewFriendsUseCase(store UserStore, notifier Notifier, now func() time.Time) *FriendsUseCase {
	return &FriendsUseCase{store: store, notifier: notifier, now: now}
}

// SendRequest records a pending request on both sides.
func (f *FriendsUseCase) SendRequest(ctx context.Context, email, target string) error {
	email = user.NormalizeEmail(email)
	target = user.NormalizeEmail(target)

	if target == "" {
		return errs.ErrEmptyEmail
	}
	if target == email {
		return errs.ErrSelfFriend
	}

	err := f.store.Update(ctx, func(users user.Users) error {
		me, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		other, ok := users[target]
		if !ok {
			return errs.ErrUserNotFound
		}
		if slices.Contains(me.Friends.List, target) {
			return errs.ErrAlreadyFriends
		}
		if slices.Contains(me.Friends.PendingSent, target) || slices.Contains(me.Friends.PendingReceived, target) {
			return errs.ErrRequestPending
		}

		me.Friends.PendingSent = addUnique(me.Friends.PendingSent, target)
		other.Friends.PendingReceived = addUnique(other.Friends.PendingReceived, email)
		return nil
	})
	if err != nil {
		return fmt.Errorf("friend request to %s: %w", target, err)
	}

	f.notify(target, event.Event{Type: event.FriendRequested, From: email})
	return nil
}

// Accept turns a received request into a friendship on both records. A request
// that is not pending is a no-op. When the requester's record is gone the
// stale request is dropped and no friendship is made.
func (f *FriendsUseCase) Accept(ctx context.Context, email, requester string) error {
	email = user.NormalizeEmail(email)
	requester = user.NormalizeEmail(requester)

	accepted := false
	err := f.store.Update(ctx, func(users user.Users) error {
		me, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		if !slices.Contains(me.Friends.PendingReceived, requester) {
			return nil
		}

		me.Friends.PendingReceived = remove(me.Friends.PendingReceived, requester)

		other, ok := users[requester]
		if !ok {
			return nil
		}
		other.Friends.PendingSent = remove(other.Friends.PendingSent, email)
		other.Friends.List = addUnique(other.Friends.List, email)
		me.Friends.List = addUnique(me.Friends.List, requester)
		accepted = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("accept friend %s: %w", requester, err)
	}

	if accepted {
		f.notify(requester, event.Event{Type: event.FriendAccepted, From: email})
	}
	return nil
}

// Reject drops a received request from both sides.
func (f *FriendsUseCase) Reject(ctx context.Context, email, requester string) error {
	email = user.NormalizeEmail(email)
	requester = user.NormalizeEmail(requester)

	rejected := false
	err := f.store.Update(ctx, func(users user.Users) error {
		me, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		rejected = slices.Contains(me.Friends.PendingReceived, requester)
		me.Friends.PendingReceived = remove(me.Friends.PendingReceived, requester)

		if other, ok := users[requester]; ok {
			other.Friends.PendingSent = remove(other.Friends.PendingSent, email)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reject friend %s: %w", requester, err)
	}

	if rejected {
		f.notify(requester, event.Event{Type: event.FriendRejected, From: email})
	}
	return nil
}

// Remove ends a friendship on both sides. It never fails because one side
// already lacks the other.
func (f *FriendsUseCase) Remove(ctx context.Context, email, friend string) error {
	email = user.NormalizeEmail(email)
	friend = user.NormalizeEmail(friend)

	removed := false
	err := f.store.Update(ctx, func(users user.Users) error {
		me, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		removed = slices.Contains(me.Friends.List, friend)
		me.Friends.List = remove(me.Friends.List, friend)

		if other, ok := users[friend]; ok {
			other.Friends.List = remove(other.Friends.List, email)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove friend %s: %w", friend, err)
	}

	if removed {
		f.notify(friend, event.Event{Type: event.FriendRemoved, From: email})
	}
	return nil
}

// List returns the friends with their names and current streaks.
func (f *FriendsUseCase) List(ctx context.Context, email string) (Overview, error) {
	email = user.NormalizeEmail(email)

	var overview Overview
	err := f.store.View(ctx, func(users user.Users) error {
		me, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		now := f.now()
		overview.Friends = make([]Friend, 0, len(me.Friends.List))
		for _, e := range me.Friends.List {
			fr := Friend{Email: e, Name: e}
			if other, ok := users[e]; ok {
				fr.Name = other.DisplayName()
				fr.Avatar = other.Data.Avatar
				fr.Streak = stats.Streak(other.DailyLogs, now)
			}
			overview.Friends = append(overview.Friends, fr)
		}
		overview.PendingSent = slices.Clone(me.Friends.PendingSent)
		overview.PendingReceived = slices.Clone(me.Friends.PendingReceived)
		return nil
	})
	if err != nil {
		return Overview{}, fmt.Errorf("list friends: %w", err)
	}
	return overview, nil
}

func (f *FriendsUseCase) notify(email string, ev event.Event) {
	if f.notifier != nil {
		f.notifier.Notify(email, ev)
	}
}

func addUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

func remove(list []string, s string) []string {
	if list == nil {
		return []string{}
	}
	return slices.DeleteFunc(list, func(v string) bool { return v == s })
}
