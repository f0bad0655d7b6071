package chess

import (
	"net/http"

	"prodtrack/internal/httpresponse"
)

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handle is a placeholder; chess_match progress is not tracked yet.
func Handle(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, StatusResponse{
		Status:  "coming_soon",
		Message: "Chess matches between friends are coming soon.",
	})
}
