package api

import (
	"net/http"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// Resource catalog and library handlers. Both listings take an optional ?q=
// filter over title, source and tags.

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := s.repo.ListResources(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondStoreError(w, err, "list resources")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"resources": resources,
		"total":     len(resources),
	})
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	library, err := s.repo.ListLibrary(r.Context(), caller.UserID, r.URL.Query().Get("q"))
	if err != nil {
		respondStoreError(w, err, "list library", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"library": library,
		"total":   len(library),
	})
}

func (s *Server) handleSaveResource(w http.ResponseWriter, r *http.Request) {
	var req models.SaveResourceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sr := &models.SavedResource{
		UserID:     callerFrom(r).UserID,
		ResourceID: req.ResourceID,
		Notes:      req.Notes,
	}
	if err := s.repo.SaveResource(r.Context(), sr); err != nil {
		respondStoreError(w, err, "save resource", "resource_id", req.ResourceID)
		return
	}
	respondJSON(w, http.StatusCreated, sr)
}

func (s *Server) handleDeleteSavedResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid library entry id")
		return
	}

	if err := s.repo.DeleteSavedResource(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete saved resource", "id", id)
		return
	}
	respondDeleted(w, id.String())
}
