package api

import (
	"net/http"
	"time"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// Career path handlers

func (s *Server) handleListCareerPaths(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	paths, err := s.repo.ListCareerPaths(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list career paths", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"paths": paths,
		"total": len(paths),
	})
}

func (s *Server) handleCreateCareerPath(w http.ResponseWriter, r *http.Request) {
	var req models.CareerPathRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p := &models.CareerPath{
		UserID:      callerFrom(r).UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.CreateCareerPath(r.Context(), p); err != nil {
		respondStoreError(w, err, "create career path")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleDeleteCareerPath(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid career path id")
		return
	}

	if err := s.repo.DeleteCareerPath(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete career path", "id", id)
		return
	}
	respondDeleted(w, id.String())
}

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	pathIDValue, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid career path id")
		return
	}

	milestones, err := s.repo.ListMilestones(r.Context(), callerFrom(r).UserID, pathIDValue)
	if err != nil {
		respondStoreError(w, err, "list milestones", "career_path_id", pathIDValue)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"milestones": milestones,
		"total":      len(milestones),
	})
}

func (s *Server) handleCreateMilestone(w http.ResponseWriter, r *http.Request) {
	pathIDValue, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid career path id")
		return
	}

	var req models.MilestoneRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m := &models.Milestone{
		CareerPathID: pathIDValue,
		UserID:       callerFrom(r).UserID,
		Title:        req.Title,
	}
	if req.TargetDate != nil {
		// already checked by the datetime validator
		due, _ := time.Parse(models.DateLayout, *req.TargetDate)
		m.TargetDate = &due
	}

	if err := s.repo.CreateMilestone(r.Context(), m); err != nil {
		respondStoreError(w, err, "create milestone", "career_path_id", pathIDValue)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) handleToggleMilestone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid milestone id")
		return
	}

	m, err := s.repo.ToggleMilestone(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "toggle milestone", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid milestone id")
		return
	}

	if err := s.repo.DeleteMilestone(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete milestone", "id", id)
		return
	}
	respondDeleted(w, id.String())
}
