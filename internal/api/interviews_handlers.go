package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/terra-clan/talent-tracker/internal/models"
	"github.com/terra-clan/talent-tracker/internal/storage"
)

// Interview handlers

func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	interviews, err := s.repo.ListRecentInterviews(r.Context(), caller.UserID, 0)
	if err != nil {
		respondStoreError(w, err, "list interviews", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"interviews": interviews,
		"total":      len(interviews),
	})
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid interview id")
		return
	}

	iv, err := s.repo.GetInterview(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "get interview", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, iv)
}

func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	var req models.InterviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if !s.ownsJob(w, r, req.JobID) {
		return
	}

	iv := &models.Interview{UserID: callerFrom(r).UserID}
	applyInterviewRequest(iv, &req)

	if err := s.repo.CreateInterview(r.Context(), iv); err != nil {
		respondStoreError(w, err, "create interview")
		return
	}
	respondJSON(w, http.StatusCreated, iv)
}

func (s *Server) handleUpdateInterview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid interview id")
		return
	}

	var req models.InterviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !s.ownsJob(w, r, req.JobID) {
		return
	}

	iv, err := s.repo.GetInterview(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "get interview", "id", id)
		return
	}

	applyInterviewRequest(iv, &req)
	if err := s.repo.UpdateInterview(r.Context(), iv); err != nil {
		respondStoreError(w, err, "update interview", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, iv)
}

func (s *Server) handleDeleteInterview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid interview id")
		return
	}

	if err := s.repo.DeleteInterview(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete interview", "id", id)
		return
	}
	respondDeleted(w, id.String())
}

// ownsJob rejects interviews linked to a job the caller cannot see
func (s *Server) ownsJob(w http.ResponseWriter, r *http.Request, jobID *uuid.UUID) bool {
	if jobID == nil {
		return true
	}
	if _, err := s.repo.GetJob(r.Context(), callerFrom(r).UserID, *jobID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "validation_error", "job_id does not reference one of your jobs")
			return false
		}
		respondStoreError(w, err, "get job", "id", *jobID)
		return false
	}
	return true
}

func applyInterviewRequest(iv *models.Interview, req *models.InterviewRequest) {
	iv.JobID = req.JobID
	iv.InterviewType = req.InterviewType
	iv.ScheduledAt = req.ScheduledAt
	iv.Rating = req.Rating
	iv.OutcomeNotes = req.OutcomeNotes
	iv.Status = req.Status
	if iv.Status == "" {
		iv.Status = "scheduled"
	}
}
