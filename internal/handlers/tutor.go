package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"aren-backend/internal/models"
)

// maxBodyBytes caps ask and prompt payloads; a profile is a few hundred bytes.
const maxBodyBytes = 64 << 10

type tutorService interface {
	Ask(ctx context.Context, req models.AskRequest) (string, error)
	Prompt(req models.AskRequest) (string, error)
	Ping(ctx context.Context) (string, error)
}

type TutorHandler struct {
	tutor tutorService
}

func NewTutorHandler(tutor tutorService) *TutorHandler {
	return &TutorHandler{tutor: tutor}
}

func (h *TutorHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Aren AI Backend API"})
}

func (h *TutorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := h.tutor.Ask(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AskResponse{Response: reply})
}

// Prompt returns the system prompt the tutor would use for the request.
func (h *TutorHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	prompt, err := h.tutor.Prompt(req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PromptResponse{Prompt: prompt})
}

func (h *TutorHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	reply, err := h.tutor.Ping(r.Context())
	if err != nil {
		log.Printf("AI connection test failed (request %s): %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusBadGateway, errorResp("AI_ERROR", "Could not reach the AI backend", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ConnectionStatus{
		Status:             "Success",
		Message:            "Connection to the AI backend established and working.",
		TestPromptResponse: reply,
	})
}

// decodeBody reads a JSON body of at most maxBodyBytes into dst. On failure it
// writes the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("PAYLOAD_TOO_LARGE", "Request body too large", r))
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
	return false
}
