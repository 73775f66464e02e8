package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const maxErrorMessageLength = 200

// respondJSON sends data as the JSON body, without an envelope
func respondJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed_to_encode_response",
			zap.Error(err),
			zap.Int("status_code", status),
		)
	}
}

// sanitizeErrorMessage keeps client facing messages short
func sanitizeErrorMessage(message string) string {
	if len(message) > maxErrorMessageLength {
		return message[:maxErrorMessageLength] + "..."
	}
	return message
}

// respondJSONError sends {"error": message}
func respondJSONError(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	respondJSON(w, status, map[string]string{"error": sanitizeErrorMessage(message)}, logger)
}
