package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/terra-clan/talent-tracker/internal/auth"
	"github.com/terra-clan/talent-tracker/internal/coach"
	"github.com/terra-clan/talent-tracker/internal/models"
)

// Coach error bodies, kept identical to what the chat page already handles.
const (
	msgMissingKey   = "Missing OPENAI_API_KEY"
	msgUnauthorized = "Unauthorized"
	msgBadRequest   = "Invalid request body"
	msgAIFailed     = "AI request failed"
)

type coachError struct {
	Error string `json:"error"`
}

func respondCoach(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode coach response", "error", err)
	}
}

func respondCoachError(w http.ResponseWriter, status int, message string) {
	respondCoach(w, status, coachError{Error: message})
}

// handleCoach answers POST /api/coach. The credential and the caller are
// checked before the body is read, so anonymous callers get 401 whatever
// they send.
func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	if err := s.coach.Check(caller); err != nil {
		s.respondCoachFailure(w, r, caller, err)
		return
	}

	var req models.CoachRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondCoachError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondCoachError(w, http.StatusBadRequest, msgBadRequest+": "+validationMessage(err))
		return
	}

	reply, err := s.coach.Reply(r.Context(), caller, req.Messages)
	if err != nil {
		s.respondCoachFailure(w, r, caller, err)
		return
	}
	respondCoach(w, http.StatusOK, models.CoachResponse{Reply: reply})
}

func (s *Server) respondCoachFailure(w http.ResponseWriter, r *http.Request, caller auth.Caller, err error) {
	switch {
	case errors.Is(err, coach.ErrNotConfigured):
		slog.Error("coach request without provider credential")
		respondCoachError(w, http.StatusInternalServerError, msgMissingKey)
	case errors.Is(err, coach.ErrUnauthenticated):
		respondCoachError(w, http.StatusUnauthorized, msgUnauthorized)
	default:
		slog.Error("coach request failed",
			"error", err,
			"user_id", caller.UserID,
			"request_id", middleware.GetReqID(r.Context()),
		)
		respondCoachError(w, http.StatusInternalServerError, msgAIFailed)
	}
}
