package journal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	journalUC "prodtrack/internal/usecase/journal"
	"prodtrack/internal/utils"
)

type JournalHandler struct {
	log         *zap.SugaredLogger
	journalUC   *journalUC.JournalUseCase
	authHandler *auth.AuthHandler
}

type TaskRequest struct {
	Label string `json:"label"`
	Hours int    `json:"hours"`
	Date  string `json:"date"`
}

type LogRequest struct {
	Date string         `json:"date"`
	Mood string         `json:"mood"`
	Log  map[string]int `json:"log"`
}

type ActivityRequest struct {
	Name string `json:"name"`
}

type GoalRequest struct {
	Activity string `json:"activity"`
	Hours    int    `json:"hours"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

type ExpenseRequest struct {
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

type ProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func NewJournalHandler(log *zap.SugaredLogger, uc *journalUC.JournalUseCase, authHandler *auth.AuthHandler) *JournalHandler {
	return &JournalHandler{log: log, journalUC: uc, authHandler: authHandler}
}

// decode resolves the session and the JSON body. On failure the response is
// already written and ok is false.
func (j *JournalHandler) decode(w http.ResponseWriter, r *http.Request, op string, dst any) (email string, ok bool) {
	email = j.authHandler.GetUserID(w, r)
	if email == "" {
		return "", false
	}
	if err := utils.DecodeJSONRequest(r, dst); err != nil {
		j.log.Errorf("%s: %v", op, err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return "", false
	}
	return email, true
}

func (j *JournalHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	email, ok := j.decode(w, r, "AddTask", &req)
	if !ok {
		return
	}

	task, err := j.journalUC.RecordTask(r.Context(), email, req.Label, req.Hours, req.Date)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "AddTask", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, task)
}

func (j *JournalHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	email, ok := j.decode(w, r, "AddLog", &req)
	if !ok {
		return
	}

	entry, err := j.journalUC.RecordDailyLog(r.Context(), email, req.Date, req.Mood, req.Log)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "AddLog", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, entry)
}

func (j *JournalHandler) Activities(w http.ResponseWriter, r *http.Request) {
	email := j.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	activities, err := j.journalUC.Activities(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "Activities", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, activities)
}

func (j *JournalHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	email, ok := j.decode(w, r, "AddActivity", &req)
	if !ok {
		return
	}

	activities, err := j.journalUC.AddActivity(r.Context(), email, req.Name)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "AddActivity", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, activities)
}

func (j *JournalHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req GoalRequest
	email, ok := j.decode(w, r, "SetGoal", &req)
	if !ok {
		return
	}

	goals, err := j.journalUC.SetGoal(r.Context(), email, req.Activity, req.Hours)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "SetGoal", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, goals)
}

func (j *JournalHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	email, ok := j.decode(w, r, "AddNote", &req)
	if !ok {
		return
	}

	note, err := j.journalUC.AddNote(r.Context(), email, req.Text)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "AddNote", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, note)
}

func (j *JournalHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	email := j.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	if err := j.journalUC.DeleteNote(r.Context(), email, chi.URLParam(r, "id")); err != nil {
		delivery.WriteUsecaseError(w, j.log, "DeleteNote", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (j *JournalHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req ExpenseRequest
	email, ok := j.decode(w, r, "AddExpense", &req)
	if !ok {
		return
	}

	expense, err := j.journalUC.AddExpense(r.Context(), email, req.Label, req.Amount, req.Category, req.Date)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "AddExpense", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, expense)
}

func (j *JournalHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	email, ok := j.decode(w, r, "UpdateProfile", &req)
	if !ok {
		return
	}

	profile, err := j.journalUC.UpdateProfile(r.Context(), email, req.Name, req.Avatar)
	if err != nil {
		delivery.WriteUsecaseError(w, j.log, "UpdateProfile", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, profile)
}
