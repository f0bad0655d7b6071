package challenge

import (
	"net/http"

	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	challengeUC "prodtrack/internal/usecase/challenge"
)

type ChallengeHandler struct {
	log         *zap.SugaredLogger
	challengeUC *challengeUC.ChallengeUseCase
	authHandler *auth.AuthHandler
}

func NewChallengeHandler(log *zap.SugaredLogger, uc *challengeUC.ChallengeUseCase, authHandler *auth.AuthHandler) *ChallengeHandler {
	return &ChallengeHandler{log: log, challengeUC: uc, authHandler: authHandler}
}

// Challenges refreshes and returns the daily and weekly lanes.
func (c *ChallengeHandler) Challenges(w http.ResponseWriter, r *http.Request) {
	email := c.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	board, err := c.challengeUC.Challenges(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, c.log, "Challenges", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, board)
}
