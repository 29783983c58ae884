package api

import (
	"net/http"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// Learning plan handlers

func (s *Server) handleListLearningModules(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	modules, err := s.repo.ListLearningModules(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list learning modules", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"modules": modules,
		"total":   len(modules),
	})
}

func (s *Server) handleCreateLearningModule(w http.ResponseWriter, r *http.Request) {
	var req models.LearningModuleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	m := &models.LearningModule{
		UserID:      callerFrom(r).UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.CreateLearningModule(r.Context(), m); err != nil {
		respondStoreError(w, err, "create learning module")
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) handleDeleteLearningModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid module id")
		return
	}

	if err := s.repo.DeleteLearningModule(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete learning module", "id", id)
		return
	}
	respondDeleted(w, id.String())
}

func (s *Server) handleCreateLearningItem(w http.ResponseWriter, r *http.Request) {
	moduleID, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid module id")
		return
	}

	var req models.LearningItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	it := &models.LearningItem{
		ModuleID: moduleID,
		UserID:   callerFrom(r).UserID,
		Title:    req.Title,
		URL:      req.URL,
	}
	if err := s.repo.CreateLearningItem(r.Context(), it); err != nil {
		respondStoreError(w, err, "create learning item", "module_id", moduleID)
		return
	}
	respondJSON(w, http.StatusCreated, it)
}

func (s *Server) handleToggleLearningItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid item id")
		return
	}

	it, err := s.repo.ToggleLearningItem(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "toggle learning item", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

func (s *Server) handleDeleteLearningItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid item id")
		return
	}

	if err := s.repo.DeleteLearningItem(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete learning item", "id", id)
		return
	}
	respondDeleted(w, id.String())
}
