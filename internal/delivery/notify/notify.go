package notify

import (
	"net/http"

	"prodtrack/internal/delivery/auth"
	"prodtrack/internal/notify"
)

type NotifyHandler struct {
	hub         *notify.Hub
	authHandler *auth.AuthHandler
}

func NewNotifyHandler(hub *notify.Hub, authHandler *auth.AuthHandler) *NotifyHandler {
	return &NotifyHandler{hub: hub, authHandler: authHandler}
}

// Connect upgrades an authenticated request to the event stream.
func (n *NotifyHandler) Connect(w http.ResponseWriter, r *http.Request) {
	email := n.authHandler.GetUserID(w, r)
	if email == "" {
		return
	}
	n.hub.Serve(w, r, email)
}
