package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"aren-backend/internal/models"
	"aren-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *services.ValidationError
	var configErr *services.ConfigurationError
	var relayErr *services.RelayError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", validationErr.Fields, r))
	case errors.As(err, &configErr):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("CONFIGURATION_ERROR",
			"Unsupported learning style. Use visual, auditory, kinesthetic or reading/writing.",
			map[string]string{configErr.Field: "unsupported value"}, r))
	case errors.As(err, &relayErr):
		log.Printf("AI relay failed (request %s): %v", r.Header.Get("X-Request-ID"), relayErr)
		writeJSON(w, http.StatusBadGateway, errorResp("AI_ERROR", "Failed to get AI response", r))
	default:
		log.Printf("unexpected error (request %s): %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
