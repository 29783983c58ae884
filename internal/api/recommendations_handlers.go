package api

import (
	"log/slog"
	"net/http"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// handleGenerateRecommendations derives recommendations for one skill from
// its current level and stores them.
func (s *Server) handleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid skill id")
		return
	}

	sk, err := s.repo.GetSkill(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "get skill", "id", id)
		return
	}

	recs := models.Recommend(sk)
	if err := s.repo.CreateRecommendations(r.Context(), recs); err != nil {
		respondStoreError(w, err, "create recommendations", "skill_id", id)
		return
	}

	slog.Info("recommendations generated", "skill_id", id, "count", len(recs))
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"recommendations": recs,
		"total":           len(recs),
	})
}

func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	recs, err := s.repo.ListOpenRecommendations(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list recommendations", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"total":           len(recs),
	})
}

func (s *Server) handleCompleteRecommendation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid recommendation id")
		return
	}

	rec, err := s.repo.CompleteRecommendation(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "complete recommendation", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
