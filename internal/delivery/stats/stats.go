package stats

import (
	"bytes"
	"net/http"
	"time"

	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	"prodtrack/internal/report"
	statsUC "prodtrack/internal/usecase/stats"
)

type StatsHandler struct {
	log         *zap.SugaredLogger
	statsUC     *statsUC.StatsUseCase
	authHandler *auth.AuthHandler
	now         func() time.Time
}

func NewStatsHandler(log *zap.SugaredLogger, uc *statsUC.StatsUseCase, authHandler *auth.AuthHandler, now func() time.Time) *StatsHandler {
	return &StatsHandler{log: log, statsUC: uc, authHandler: authHandler, now: now}
}

func (s *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	email := s.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	dash, err := s.statsUC.Dashboard(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, s.log, "Dashboard", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, dash)
}

// Report streams the dashboard as a PDF attachment.
func (s *StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	email := s.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	dash, err := s.statsUC.Dashboard(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, s.log, "Report", err)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, email, dash, s.now()); err != nil {
		delivery.WriteUsecaseError(w, s.log, "Report", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error("Report: write error: ", err)
	}
}
