package h2h

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
	events map[string][]event.Event
}

func (r *recorder) Notify(email string, ev event.Event) {
	if r.events == nil {
		r.events = map[string][]event.Event{}
	}
	r.events[email] = append(r.events[email], ev)
}

type fixture struct {
	store *repository.FileUserStore
	uc    *H2HUseCase
	rec   *recorder
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := repository.NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, func(users user.Users) error {
		ann := user.New("ann@x.io", "", "Ann")
		bob := user.New("bob@x.io", "", "Bob")
		carl := user.New("carl@x.io", "", "Carl")
		ann.Friends.List = []string{"bob@x.io"}
		bob.Friends.List = []string{"ann@x.io"}
		users[ann.Email], users[bob.Email], users[carl.Email] = ann, bob, carl
		return nil
	}))

	f := &fixture{store: store, rec: &recorder{}, clock: now}
	f.uc = NewH2HUseCase(store, f.rec, func() time.Time { return f.clock })
	return f
}

func (f *fixture) user(t *testing.T, email string) *user.User {
	t.Helper()
	var out *user.User
	require.NoError(t, f.store.View(context.Background(), func(users user.Users) error {
		out = users[email]
		return nil
	}))
	require.NotNil(t, out)
	return out
}

func TestCreateMirrorsIntoBothRecords(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), "Ann@x.io", "bob@x.io", "hour_sprint")
	require.NoError(t, err)
	assert.Len(t, created.ID, 8)

	ann := f.user(t, "ann@x.io")
	bob := f.user(t, "bob@x.io")

	require.Len(t, ann.H2HChallenges.Active, 1)
	require.Len(t, bob.H2HChallenges.Pending, 1)
	assert.Equal(t, ann.H2HChallenges.Active[0], bob.H2HChallenges.Pending[0])
	assert.Equal(t, user.H2HPending, bob.H2HChallenges.Pending[0].Status)
	assert.Equal(t, "2024-03-21", created.EndDate)
	assert.Nil(t, created.Winner)

	require.Len(t, f.rec.events["bob@x.io"], 1)
	assert.Equal(t, event.H2HCreated, f.rec.events["bob@x.io"][0].Type)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		opponent string
		kind     string
		want     error
	}{
		{name: "empty opponent", opponent: " ", kind: "hour_sprint", want: errs.ErrEmptyEmail},
		{name: "self", opponent: "ANN@x.io", kind: "hour_sprint", want: errs.ErrSelfChallenge},
		{name: "unknown type", opponent: "bob@x.io", kind: "arm_wrestling", want: errs.ErrUnknownChallenge},
		{name: "unknown opponent", opponent: "zed@x.io", kind: "hour_sprint", want: errs.ErrUserNotFound},
		{name: "not a friend", opponent: "carl@x.io", kind: "hour_sprint", want: errs.ErrNotFriends},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, "ann@x.io", tt.opponent, tt.kind)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, f.user(t, "ann@x.io").H2HChallenges.Active)
	assert.Empty(t, f.user(t, "carl@x.io").H2HChallenges.Pending)
}

func TestAcceptActivatesBothCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "task_race")
	require.NoError(t, err)

	f.clock = now.AddDate(0, 0, 2)
	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", created.ID, ResponseAccept))

	ann := f.user(t, "ann@x.io")
	bob := f.user(t, "bob@x.io")
	require.Len(t, ann.H2HChallenges.Active, 1)
	require.Len(t, bob.H2HChallenges.Active, 1)
	assert.Empty(t, bob.H2HChallenges.Pending)

	assert.Equal(t, user.H2HActive, ann.H2HChallenges.Active[0].Status)
	assert.Equal(t, user.H2HActive, bob.H2HChallenges.Active[0].Status)
	assert.Equal(t, ann.H2HChallenges.Active[0], bob.H2HChallenges.Active[0])
	assert.Equal(t, "2024-03-16", bob.H2HChallenges.Active[0].StartDate)
	assert.Equal(t, "2024-03-23", bob.H2HChallenges.Active[0].EndDate)

	require.Len(t, f.rec.events["ann@x.io"], 1)
	assert.Equal(t, event.H2HAccepted, f.rec.events["ann@x.io"][0].Type)
}

func TestDeclineRemovesBothCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "streak_duel")
	require.NoError(t, err)
	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", created.ID, ResponseDecline))

	assert.Empty(t, f.user(t, "ann@x.io").H2HChallenges.Active)
	assert.Empty(t, f.user(t, "bob@x.io").H2HChallenges.Pending)
	assert.Empty(t, f.user(t, "bob@x.io").H2HChallenges.Active)
}

func TestRespondUnknownIdIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", "deadbeef", ResponseAccept))
	assert.Empty(t, f.rec.events)

	assert.ErrorIs(t, f.uc.Respond(ctx, "bob@x.io", "deadbeef", "maybe"), errs.ErrUnknownResponse)
}

func TestRespondWithMissingChallengerCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "hour_sprint")
	require.NoError(t, err)
	require.NoError(t, f.store.Update(ctx, func(users user.Users) error {
		users["ann@x.io"].H2HChallenges.Active = nil
		return nil
	}))

	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", created.ID, ResponseAccept))
	assert.Len(t, f.user(t, "bob@x.io").H2HChallenges.Active, 1)
	assert.Empty(t, f.user(t, "ann@x.io").H2HChallenges.Active)
}

func TestListAdvancesAndCompletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "hour_sprint")
	require.NoError(t, err)
	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", created.ID, ResponseAccept))

	require.NoError(t, f.store.Update(ctx, func(users user.Users) error {
		users["ann@x.io"].DailyLogs = []user.DailyLog{
			{Date: "2024-03-14", Log: map[string]int{"Study": 5}},
			{Date: "2024-03-01", Log: map[string]int{"Study": 50}},
		}
		users["bob@x.io"].DailyLogs = []user.DailyLog{{Date: "2024-03-14", Log: map[string]int{"Coding": 3}}}
		return nil
	}))

	book, err := f.uc.List(ctx, "bob@x.io")
	require.NoError(t, err)
	require.Len(t, book.Active, 1)
	assert.Equal(t, 5, book.Active[0].ChallengerProgress)
	assert.Equal(t, 3, book.Active[0].OpponentProgress)
	assert.Equal(t, book.Active[0], f.user(t, "ann@x.io").H2HChallenges.Active[0])

	require.NoError(t, f.store.Update(ctx, func(users user.Users) error {
		users["bob@x.io"].DailyLogs = append(users["bob@x.io"].DailyLogs,
			user.DailyLog{Date: "2024-03-15", Log: map[string]int{"Coding": 18}})
		return nil
	}))
	f.clock = now.AddDate(0, 0, 1)

	book, err = f.uc.List(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.Empty(t, book.Active)
	require.Len(t, book.Completed, 1)
	require.NotNil(t, book.Completed[0].Winner)
	assert.Equal(t, "bob@x.io", *book.Completed[0].Winner)
	assert.Equal(t, user.H2HCompleted, book.Completed[0].Status)

	bob := f.user(t, "bob@x.io")
	assert.Empty(t, bob.H2HChallenges.Active)
	require.Len(t, bob.H2HChallenges.Completed, 1)
	assert.Equal(t, book.Completed[0], bob.H2HChallenges.Completed[0])
}

func TestStreakCountsOnlyDaysInWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "streak_duel")
	require.NoError(t, err)
	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", created.ID, ResponseAccept))

	require.NoError(t, f.store.Update(ctx, func(users user.Users) error {
		var logs []user.DailyLog
		for d := 10; d >= 0; d-- {
			day := now.AddDate(0, 0, -d).Format("2006-01-02")
			logs = append(logs, user.DailyLog{Date: day, Log: map[string]int{"Study": 1}})
		}
		users["ann@x.io"].DailyLogs = logs
		users["bob@x.io"].DailyLogs = []user.DailyLog{{Date: "2024-03-13", Log: map[string]int{"Coding": 1}}}
		return nil
	}))

	book, err := f.uc.List(ctx, "ann@x.io")
	require.NoError(t, err)
	require.Len(t, book.Active, 1)
	assert.Equal(t, 1, book.Active[0].ChallengerProgress)
	assert.Equal(t, 0, book.Active[0].OpponentProgress)
}

func TestListCompletesAfterEndDateWithTie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "task_race")
	require.NoError(t, err)
	require.NoError(t, f.uc.Respond(ctx, "bob@x.io", created.ID, ResponseAccept))

	f.clock = now.AddDate(0, 0, 8)
	book, err := f.uc.List(ctx, "ann@x.io")
	require.NoError(t, err)
	require.Len(t, book.Completed, 1)
	assert.Nil(t, book.Completed[0].Winner)
	assert.Equal(t, event.H2HCompleted, f.rec.events["bob@x.io"][len(f.rec.events["bob@x.io"])-1].Type)
}

func TestPendingChallengesAreNotAdvanced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "ann@x.io", "bob@x.io", "hour_sprint")
	require.NoError(t, err)

	f.clock = now.AddDate(0, 0, 30)
	book, err := f.uc.List(ctx, "ann@x.io")
	require.NoError(t, err)
	require.Len(t, book.Active, 1)
	assert.Equal(t, user.H2HPending, book.Active[0].Status)
}
