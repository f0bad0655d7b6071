package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	"prodtrack/internal/repository"
	authUC "prodtrack/internal/usecase/auth"
	journalUC "prodtrack/internal/usecase/journal"
	statsUC "prodtrack/internal/usecase/stats"
)

var now = time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestDashboardAndReport(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop().Sugar()
	store, err := repository.NewFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	authUsecase := authUC.NewUserUsecaseHandler(store, repository.NewSessionMapStorage(), clock)
	sid, err := authUsecase.RegisterUser(ctx, "ann@x.io", "pw", "Ann")
	require.NoError(t, err)

	journal := journalUC.NewJournalUseCase(store, clock)
	_, err = journal.RecordTask(ctx, "ann@x.io", "write", 3, "")
	require.NoError(t, err)
	for _, day := range []string{"2024-03-12", "2024-03-13", "2024-03-14"} {
		_, err = journal.RecordDailyLog(ctx, "ann@x.io", day, "", map[string]int{"Study": 2})
		require.NoError(t, err)
	}

	h := NewStatsHandler(log, statsUC.NewStatsUseCase(store, clock),
		auth.NewAuthHandler(authUsecase, log, time.Hour, false), clock)
	cookie := &http.Cookie{Name: "sessionID", Value: sid}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Dashboard(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpresponse.Response[statsUC.Dashboard]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Body.Streak)
	assert.Equal(t, 3, resp.Body.WeeklyTotals["2024-W11"])
	require.Len(t, resp.Body.Badges, 2)
	assert.Equal(t, "on_fire", resp.Body.Badges[1].ID)

	req = httptest.NewRequest(http.MethodGet, "/report.pdf", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.Report(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
