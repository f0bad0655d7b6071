package auth

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"prodtrack/internal/delivery"
	"prodtrack/internal/httpresponse"
	authUC "prodtrack/internal/usecase/auth"
	"prodtrack/internal/utils"
)

const sessionCookie = "sessionID"

type AuthHandler struct {
	usecaseHandler *authUC.AuthUsecaseHandler
	log            *zap.SugaredLogger
	sessionTTL     time.Duration
	secureCookie   bool
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc *authUC.AuthUsecaseHandler, log *zap.SugaredLogger, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: uc,
		log:            log,
		sessionTTL:     sessionTTL,
		secureCookie:   secureCookie,
	}
}

// Register creates the account and signs the user in.
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerData RegisterRequest
	if err := utils.DecodeJSONRequest(r, &registerData); err != nil {
		a.log.Error("Register: malformed JSON: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	sessionID, err := a.usecaseHandler.RegisterUser(r.Context(), registerData.Email, registerData.Password, registerData.Name)
	if err != nil {
		delivery.WriteUsecaseError(w, a.log, "Register", err)
		return
	}

	a.setSession(w, sessionID)
	a.log.Infof("Register: new user %s", registerData.Email)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginData LoginRequest
	if err := utils.DecodeJSONRequest(r, &loginData); err != nil {
		a.log.Error("Login: malformed JSON: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	sessionID, err := a.usecaseHandler.LoginUser(r.Context(), loginData.Email, loginData.Password)
	if err != nil {
		delivery.WriteUsecaseError(w, a.log, "Login", err)
		return
	}

	a.setSession(w, sessionID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		a.log.Warn("Logout: no cookie provided")
		httpresponse.WriteError(w, http.StatusBadRequest, http.ErrNoCookie.Error())
		return
	}

	if err := a.usecaseHandler.LogoutUser(r.Context(), cookie.Value); err != nil {
		delivery.WriteUsecaseError(w, a.log, "Logout", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		MaxAge:   -1,
		Secure:   a.secureCookie,
		HttpOnly: true,
	})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// GetUserID returns the email bound to the request's session.
// If the session is missing or expired it writes the error response and returns "".
func (a *AuthHandler) GetUserID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			a.log.Warn("GetUserID: no sessionID cookie")
			httpresponse.WriteError(w, http.StatusUnauthorized, "sessionID cookie not found")
			return ""
		}
		a.log.Error("GetUserID: error retrieving cookie: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return ""
	}

	email, err := a.usecaseHandler.GetUserIdFromSession(r.Context(), cookie.Value)
	if err != nil {
		delivery.WriteUsecaseError(w, a.log, "GetUserID", err)
		return ""
	}
	return email
}

func (a *AuthHandler) setSession(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Expires:  time.Now().Add(a.sessionTTL),
		Secure:   a.secureCookie,
		HttpOnly: true,
	})
}
