package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// SendResponse writes the shared success envelope.
func SendResponse(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	RespondWithJSON(w, statusCode, M{
		"statusCode": statusCode,
		"data":       data,
		"message":    message,
		"success":    statusCode < 400,
	})
}

// SendError writes the shared error envelope.
func SendError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, M{
		"statusCode": statusCode,
		"message":    message,
		"success":    false,
	})
}
