package delivery

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	errs "prodtrack/internal/errors"
	"prodtrack/internal/httpresponse"
)

type failure struct {
	status int
	text   string
}

var known = []struct {
	err error
	failure
}{
	{errs.ErrUserNotFound, failure{http.StatusNotFound, "User not found"}},
	{errs.ErrWrongPassword, failure{http.StatusBadRequest, "Wrong password"}},
	{errs.ErrSessionNotFound, failure{http.StatusUnauthorized, "Session not found or expired"}},
	{errs.ErrUserExists, failure{http.StatusConflict, "A user with this email already exists"}},
	{errs.ErrInvalidInput, failure{http.StatusBadRequest, "Invalid input"}},
	{errs.ErrInvalidDate, failure{http.StatusBadRequest, "Date must be in YYYY-MM-DD form"}},
	{errs.ErrEmptyEmail, failure{http.StatusBadRequest, "Email is required"}},
	{errs.ErrSelfFriend, failure{http.StatusBadRequest, "You cannot add yourself"}},
	{errs.ErrAlreadyFriends, failure{http.StatusConflict, "Already friends"}},
	{errs.ErrRequestPending, failure{http.StatusConflict, "A friend request is already pending"}},
	{errs.ErrNotFriends, failure{http.StatusBadRequest, "You can only challenge friends"}},
	{errs.ErrSelfChallenge, failure{http.StatusBadRequest, "You cannot challenge yourself"}},
	{errs.ErrUnknownChallenge, failure{http.StatusBadRequest, "Unknown challenge type"}},
	{errs.ErrUnknownResponse, failure{http.StatusBadRequest, "Response must be accept or decline"}},
}

// WriteUsecaseError maps a usecase error onto the response envelope. Known
// sentinels become 4xx with a readable message; anything else is a 500.
func WriteUsecaseError(w http.ResponseWriter, log *zap.SugaredLogger, op string, err error) {
	for _, k := range known {
		if errors.Is(err, k.err) {
			log.Warnf("%s: %v", op, err)
			httpresponse.WriteError(w, k.status, k.text)
			return
		}
	}
	log.Errorf("%s: internal error: %v", op, err)
	httpresponse.WriteError(w, http.StatusInternalServerError, "Internal server error")
}
