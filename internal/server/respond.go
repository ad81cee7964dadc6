package server

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// cronResponse is the envelope returned by scheduled endpoints.
type cronResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Results   any    `json:"results,omitempty"`
	Timestamp string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeCronSuccess(w http.ResponseWriter, message string, results any) {
	writeJSON(w, http.StatusOK, cronResponse{
		Success:   true,
		Message:   message,
		Results:   results,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, map[string]string{
		"error":   err,
		"message": message,
	})
}

func writeUnauthorized(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
}
