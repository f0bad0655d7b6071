package friends

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/httpresponse"
	friendsUC "prodtrack/internal/usecase/friends"
	"prodtrack/internal/utils"
)

type FriendsHandler struct {
	log         *zap.SugaredLogger
	friendsUC   *friendsUC.FriendsUseCase
	authHandler *auth.AuthHandler
}

type FriendRequest struct {
	Email string `json:"email"`
}

func NewFriendsHandler(log *zap.SugaredLogger, uc *friendsUC.FriendsUseCase, authHandler *auth.AuthHandler) *FriendsHandler {
	return &FriendsHandler{log: log, friendsUC: uc, authHandler: authHandler}
}

func (f *FriendsHandler) List(w http.ResponseWriter, r *http.Request) {
	email := f.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	overview, err := f.friendsUC.List(r.Context(), email)
	if err != nil {
		delivery.WriteUsecaseError(w, f.log, "ListFriends", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, overview)
}

func (f *FriendsHandler) Request(w http.ResponseWriter, r *http.Request) {
	f.handle(w, r, "SendFriendRequest", f.friendsUC.SendRequest)
}

func (f *FriendsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	f.handle(w, r, "AcceptFriend", f.friendsUC.Accept)
}

func (f *FriendsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	f.handle(w, r, "RejectFriend", f.friendsUC.Reject)
}

func (f *FriendsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	f.handle(w, r, "RemoveFriend", f.friendsUC.Remove)
}

func (f *FriendsHandler) handle(w http.ResponseWriter, r *http.Request, op string, action func(ctx context.Context, email, other string) error) {
	email := f.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}

	var req FriendRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		f.log.Errorf("%s: %v", op, err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	if err := action(r.Context(), email, req.Email); err != nil {
		delivery.WriteUsecaseError(w, f.log, op, err)
		return
	}
	f.log.Infof("%s: %s -> %s", op, email, req.Email)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}
