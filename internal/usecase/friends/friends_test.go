package friends

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodtrack/internal/domain/event"
	"prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
	"prodtrack/internal/repository"
)

var now = time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

type recorder struct {
	events []event.Event
}

func (r *recorder) Notify(_ string, ev event.Event) {
	r.events = append(r.events, ev)
}

func setup(t *testing.T) (*FriendsUseCase, *repository.FileUserStore, *recorder) {
	t.Helper()
	store, err := repository.NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	require.NoError(t, store.Update(context.Background(), func(users user.Users) error {
		for _, e := range []string{"ann@x.io", "bob@x.io"} {
			users[e] = user.New(e, "", "")
		}
		return nil
	}))
	rec := &recorder{}
	return NewFriendsUseCase(store, rec, func() time.Time { return now }), store, rec
}

func load(t *testing.T, store *repository.FileUserStore, email string) user.Friends {
	t.Helper()
	var fr user.Friends
	require.NoError(t, store.View(context.Background(), func(users user.Users) error {
		fr = users[email].Friends
		return nil
	}))
	return fr
}

func TestRequestAndAccept(t *testing.T) {
	uc, store, rec := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.SendRequest(ctx, "ann@x.io", "BOB@x.io"))
	assert.Equal(t, []string{"bob@x.io"}, load(t, store, "ann@x.io").PendingSent)
	assert.Equal(t, []string{"ann@x.io"}, load(t, store, "bob@x.io").PendingReceived)

	require.NoError(t, uc.Accept(ctx, "bob@x.io", "ann@x.io"))

	ann := load(t, store, "ann@x.io")
	bob := load(t, store, "bob@x.io")
	assert.Equal(t, []string{"bob@x.io"}, ann.List)
	assert.Equal(t, []string{"ann@x.io"}, bob.List)
	assert.Empty(t, ann.PendingSent)
	assert.Empty(t, ann.PendingReceived)
	assert.Empty(t, bob.PendingSent)
	assert.Empty(t, bob.PendingReceived)

	require.Len(t, rec.events, 2)
	assert.Equal(t, event.FriendRequested, rec.events[0].Type)
	assert.Equal(t, event.FriendAccepted, rec.events[1].Type)
}

func TestRequestGuards(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.SendRequest(ctx, "ann@x.io", ""), errs.ErrEmptyEmail)
	assert.ErrorIs(t, uc.SendRequest(ctx, "ann@x.io", "Ann@X.io"), errs.ErrSelfFriend)
	assert.ErrorIs(t, uc.SendRequest(ctx, "ann@x.io", "zed@x.io"), errs.ErrUserNotFound)

	require.NoError(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"))
	assert.ErrorIs(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"), errs.ErrRequestPending)
	assert.ErrorIs(t, uc.SendRequest(ctx, "bob@x.io", "ann@x.io"), errs.ErrRequestPending)

	require.NoError(t, uc.Accept(ctx, "bob@x.io", "ann@x.io"))
	assert.ErrorIs(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"), errs.ErrAlreadyFriends)

	assert.Equal(t, []string{"bob@x.io"}, load(t, store, "ann@x.io").List)
}

func TestAcceptWithoutRequestIsNoop(t *testing.T) {
	uc, store, rec := setup(t)

	require.NoError(t, uc.Accept(context.Background(), "bob@x.io", "ann@x.io"))
	assert.Empty(t, load(t, store, "bob@x.io").List)
	assert.Empty(t, rec.events)
}

func TestAcceptFromDeletedRequesterDropsRequest(t *testing.T) {
	uc, store, rec := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"))
	require.NoError(t, store.Update(ctx, func(users user.Users) error {
		delete(users, "ann@x.io")
		return nil
	}))

	require.NoError(t, uc.Accept(ctx, "bob@x.io", "ann@x.io"))
	fr := load(t, store, "bob@x.io")
	assert.Empty(t, fr.PendingReceived)
	assert.Empty(t, fr.List)
	require.Len(t, rec.events, 1)
	assert.Equal(t, event.FriendRequested, rec.events[0].Type)
}

func TestReject(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"))
	require.NoError(t, uc.Reject(ctx, "bob@x.io", "ann@x.io"))

	assert.Empty(t, load(t, store, "ann@x.io").PendingSent)
	assert.Empty(t, load(t, store, "bob@x.io").PendingReceived)
	assert.Empty(t, load(t, store, "bob@x.io").List)
}

func TestRemoveIsSymmetricAndTolerant(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"))
	require.NoError(t, uc.Accept(ctx, "bob@x.io", "ann@x.io"))

	require.NoError(t, store.Update(ctx, func(users user.Users) error {
		users["bob@x.io"].Friends.List = nil
		return nil
	}))

	require.NoError(t, uc.Remove(ctx, "ann@x.io", "bob@x.io"))
	assert.Empty(t, load(t, store, "ann@x.io").List)
	assert.Empty(t, load(t, store, "bob@x.io").List)

	require.NoError(t, uc.Remove(ctx, "ann@x.io", "bob@x.io"))
	require.NoError(t, uc.Remove(ctx, "ann@x.io", "ghost@x.io"))
}

func TestList(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(users user.Users) error {
		users["bob@x.io"].Data.Name = "Bob"
		users["bob@x.io"].DailyLogs = []user.DailyLog{
			{Date: "2024-03-14", Log: map[string]int{"Study": 1}},
			{Date: "2024-03-13", Log: map[string]int{"Study": 1}},
		}
		return nil
	}))
	require.NoError(t, uc.SendRequest(ctx, "ann@x.io", "bob@x.io"))
	require.NoError(t, uc.Accept(ctx, "bob@x.io", "ann@x.io"))

	overview, err := uc.List(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, []Friend{{Email: "bob@x.io", Name: "Bob", Streak: 2}}, overview.Friends)
	assert.Empty(t, overview.PendingSent)
}
