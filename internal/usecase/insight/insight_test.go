package insight

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prodtrack/internal/domain/user"
	"prodtrack/internal/repository"
)

var now = time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

type fakeLlm struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeLlm) SendRequestToLlm(_ context.Context, request string) (string, error) {
	f.prompts = append(f.prompts, request)
	return f.answer, f.err
}

type counter struct{ n int }

func (c *counter) AIFallback() { c.n++ }

func setup(t *testing.T, llm LlmStore) (*InsightUseCase, *repository.FileUserStore, *counter) {
	t.Helper()
	store, err := repository.NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	require.NoError(t, store.Update(context.Background(), func(users user.Users) error {
		u := user.New("ann@x.io", "", "")
		u.Tasks = []user.Task{{Label: "write report", Hours: 2, Date: "2024-03-13"}}
		u.DailyLogs = []user.DailyLog{{Date: "2024-03-13", Mood: "tired", Log: map[string]int{"Study": 2, "Coding": 1}}}
		users[u.Email] = u
		return nil
	}))
	c := &counter{}
	return NewInsightUseCase(store, llm, zap.NewNop().Sugar(), c, func() time.Time { return now }), store, c
}

func TestTipIsCachedPerDay(t *testing.T) {
	llm := &fakeLlm{answer: "  Block two focus hours before lunch.  "}
	uc, store, c := setup(t, llm)
	ctx := context.Background()

	tip, err := uc.Tip(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, "Block two focus hours before lunch.", tip)

	again, err := uc.Tip(ctx, "ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, tip, again)
	assert.Len(t, llm.prompts, 1)
	assert.Zero(t, c.n)

	require.NoError(t, store.View(ctx, func(users user.Users) error {
		assert.Equal(t, "2024-03-14", users["ann@x.io"].Data.AIInsightDate)
		return nil
	}))
}

func TestTipFallsBackOnFailure(t *testing.T) {
	for name, llm := range map[string]*fakeLlm{
		"error": {err: errors.New("quota exceeded")},
		"empty": {answer: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			uc, store, c := setup(t, llm)
			ctx := context.Background()

			tip, err := uc.Tip(ctx, "ann@x.io")
			require.NoError(t, err)
			assert.Equal(t, Fallback, tip)
			assert.Equal(t, 1, c.n)

			require.NoError(t, store.View(ctx, func(users user.Users) error {
				assert.Empty(t, users["ann@x.io"].Data.AIInsight)
				return nil
			}))
		})
	}
}

func TestTipUnknownUser(t *testing.T) {
	uc, _, _ := setup(t, &fakeLlm{answer: "x"})
	_, err := uc.Tip(context.Background(), "ghost@x.io")
	assert.Error(t, err)
}

func TestAsk(t *testing.T) {
	uc, _, c := setup(t, &fakeLlm{err: errors.New("network down")})
	assert.Equal(t, Fallback, uc.Ask(context.Background(), "how do I focus?"))
	assert.Equal(t, Fallback, uc.Ask(context.Background(), "   "))
	assert.Equal(t, 2, c.n)
}

func TestBuildPrompt(t *testing.T) {
	u := user.New("ann@x.io", "", "")
	u.DailyLogs = []user.DailyLog{{Date: "2024-03-13", Mood: "tired", Log: map[string]int{"Study": 2, "Coding": 1}}}

	prompt := BuildPrompt(u)
	assert.Contains(t, prompt, "productivity coach")
	assert.Contains(t, prompt, "Recent tasks:\n- none\n")
	assert.Contains(t, prompt, "- 2024-03-13: Coding 1h, Study 2h (mood: tired)\n")
}
