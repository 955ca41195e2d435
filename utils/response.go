package utils

import (
	"encoding/json"
	"net/http"

	"nova/models"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithAPIError maps a taxonomy error onto its HTTP status.
func RespondWithAPIError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, models.StatusFor(err), map[string]string{"error": err.Error()})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type M map[string]interface{}
