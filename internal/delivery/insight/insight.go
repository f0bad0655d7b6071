package insight

import (
	"net/http"

	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	insightUC "prodtrack/internal/usecase/insight"
	"prodtrack/internal/utils"
)

type InsightHandler struct {
	log         *zap.SugaredLogger
	insightUC   *insightUC.InsightUseCase
	authHandler *auth.AuthHandler
}

type AskRequest struct {
	Prompt string `json:"prompt"`
}

type TextResponse struct {
	Text string `json:"text"`
}

func NewInsightHandler(log *zap.SugaredLogger, uc *insightUC.InsightUseCase, authHandler *auth.AuthHandler) *InsightHandler {
	return &InsightHandler{log: log, insightUC: uc, authHandler: authHandler}
}

func (i *InsightHandler) Tip(w http.ResponseWriter, r *http.Request) {
	email := i.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	tip, err := i.insightUC.Tip(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, i.log, "Tip", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, TextResponse{Text: tip})
}

func (i *InsightHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if email := i.authHandler.GetUserID(w, r); email == "" {
		return
	}

	var req AskRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		i.log.Error("Ask: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, TextResponse{Text: i.insightUC.Ask(r.Context(), req.Prompt)})
}
