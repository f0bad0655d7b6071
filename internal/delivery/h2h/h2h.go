package h2h

import (
	"net/http"

	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	h2hUC "prodtrack/internal/usecase/h2h"
	"prodtrack/internal/utils"
)

type H2HHandler struct {
	log         *zap.SugaredLogger
	h2hUC       *h2hUC.H2HUseCase
	authHandler *auth.AuthHandler
}

type CreateRequest struct {
	Opponent string `json:"opponent"`
	Type     string `json:"type"`
}

type RespondRequest struct {
	ChallengeID string `json:"challenge_id"`
	Response    string `json:"response"`
}

func NewH2HHandler(log *zap.SugaredLogger, uc *h2hUC.H2HUseCase, authHandler *auth.AuthHandler) *H2HHandler {
	return &H2HHandler{log: log, h2hUC: uc, authHandler: authHandler}
}

func (h *H2HHandler) List(w http.ResponseWriter, r *http.Request) {
	email := h.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	book, err := h.h2hUC.List(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, h.log, "ListH2H", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, book)
}

func (h *H2HHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, h2hUC.Catalog())
}

func (h *H2HHandler) Create(w http.ResponseWriter, r *http.Request) {
	email := h.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	var req CreateRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("CreateH2H: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	created, err := h.h2hUC.Create(r.Context(), email, req.Opponent, req.Type)
	if err != nil {
		delivery.WriteUsecaseError(w, h.log, "CreateH2H", err)
		return
	}
	h.log.Infof("CreateH2H: %s challenged %s (%s)", email, created.Opponent, created.ID)
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, created)
}

func (h *H2HHandler) Respond(w http.ResponseWriter, r *http.Request) {
	email := h.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	var req RespondRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("RespondH2H: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	if err := h.h2hUC.Respond(r.Context(), email, req.ChallengeID, req.Response); err != nil {
		delivery.WriteUsecaseError(w, h.log, "RespondH2H", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}
