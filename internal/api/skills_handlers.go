package api

import (
	"log/slog"
	"net/http"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// Skill handlers

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	skills, err := s.repo.ListSkills(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list skills", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"skills": skills,
		"total":  len(skills),
	})
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, sk)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	var req models.SkillRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sk := &models.Skill{UserID: callerFrom(r).UserID}
	applySkillRequest(sk, &req)

	if err := s.repo.CreateSkill(r.Context(), sk); err != nil {
		respondStoreError(w, err, "create skill")
		return
	}

	slog.Info("skill created", "id", sk.ID, "user_id", sk.UserID, "name", sk.Name)
	respondJSON(w, http.StatusCreated, sk)
}

// handleUpdateSkill replaces a skill. The repository records a progress
// entry in the same transaction when the rated level changes.
func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid skill id")
		return
	}

	var req models.SkillRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sk := &models.Skill{ID: id, UserID: callerFrom(r).UserID}
	applySkillRequest(sk, &req)

	entry, err := s.repo.UpdateSkill(r.Context(), sk)
	if err != nil {
		respondStoreError(w, err, "update skill", "id", id)
		return
	}
	if entry != nil {
		slog.Info("skill level changed", "id", id, "from", entry.LevelBefore, "to", entry.LevelAfter)
	}

	respondJSON(w, http.StatusOK, sk)
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid skill id")
		return
	}

	if err := s.repo.DeleteSkill(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete skill", "id", id)
		return
	}
	respondDeleted(w, id.String())
}

// handleLogPractice adds practice hours to a skill and records them as a
// progress entry with unchanged levels.
func (s *Server) handleLogPractice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid skill id")
		return
	}

	var req models.PracticeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	notes := req.Notes
	if notes == "" {
		notes = models.PracticeNote(req.Hours)
	}

	sk, entry, err := s.repo.LogPractice(r.Context(), callerFrom(r).UserID, id, req.Hours, notes)
	if err != nil {
		respondStoreError(w, err, "log practice", "skill_id", id)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"skill":    sk,
		"progress": entry,
	})
}

func (s *Server) handleListSkillProgress(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	entries, err := s.repo.ListSkillProgress(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list skill progress", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"progress": entries,
		"total":    len(entries),
	})
}

func applySkillRequest(sk *models.Skill, req *models.SkillRequest) {
	sk.Name = req.Name
	sk.Level = req.Level
	sk.TargetLevel = req.TargetLevel
	sk.HoursPracticed = req.HoursPracticed
	sk.Notes = req.Notes
	sk.Category = req.Category
	if sk.Category == "" {
		sk.Category = models.DefaultCategory
	}
}
