package handler

import (
	"encoding/json"
	"net/http"
)

// envelope is the response wrapper every endpoint uses:
// {"success": bool, "message": ..., ...payload}.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) envelope {
	return envelope{"success": false, "message": msg}
}
