package handler

import (
	"net/http"
	"time"
)

// HandleHealth handles GET /api/health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC(),
	})
}
