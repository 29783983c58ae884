package api

import (
	"log/slog"
	"net/http"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// Job handlers

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	jobs, err := s.repo.ListJobs(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list jobs", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	jobs, err := s.repo.ListJobs(r.Context(), caller.UserID)
	if err != nil {
		respondStoreError(w, err, "list jobs", "user_id", caller.UserID)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"columns": BuildBoard(jobs, r.URL.Query().Get("q")),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid job id")
		return
	}

	job, err := s.repo.GetJob(r.Context(), callerFrom(r).UserID, id)
	if err != nil {
		respondStoreError(w, err, "get job", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	job := &models.Job{UserID: callerFrom(r).UserID}
	applyJobRequest(job, &req)

	if err := s.repo.CreateJob(r.Context(), job); err != nil {
		respondStoreError(w, err, "create job")
		return
	}

	slog.Info("job created", "id", job.ID, "user_id", job.UserID, "status", job.Status)
	respondJSON(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid job id")
		return
	}

	var req models.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	caller := callerFrom(r)
	job, err := s.repo.GetJob(r.Context(), caller.UserID, id)
	if err != nil {
		respondStoreError(w, err, "get job", "id", id)
		return
	}

	applyJobRequest(job, &req)
	if err := s.repo.UpdateJob(r.Context(), job); err != nil {
		respondStoreError(w, err, "update job", "id", id)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// handleMoveJob moves a job to another kanban column
func (s *Server) handleMoveJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid job id")
		return
	}

	var req models.MoveJobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "validation_error", "unknown status: "+string(req.Status))
		return
	}

	caller := callerFrom(r)
	if err := s.repo.UpdateJobStatus(r.Context(), caller.UserID, id, req.Status); err != nil {
		respondStoreError(w, err, "move job", "id", id)
		return
	}

	slog.Info("job moved", "id", id, "user_id", caller.UserID, "status", req.Status)
	respondJSON(w, http.StatusOK, map[string]string{
		"id":     id.String(),
		"status": string(req.Status),
	})
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid job id")
		return
	}

	if err := s.repo.DeleteJob(r.Context(), callerFrom(r).UserID, id); err != nil {
		respondStoreError(w, err, "delete job", "id", id)
		return
	}
	respondDeleted(w, id.String())
}

func applyJobRequest(job *models.Job, req *models.JobRequest) {
	job.Company = req.Company
	job.Title = req.Title
	job.URL = req.URL
	job.Location = req.Location
	job.RemoteType = req.RemoteType
	job.SalaryRange = req.SalaryRange
	job.Priority = req.Priority
	job.Status = req.Status
	if job.Status == "" {
		job.Status = models.JobSaved
	}
}
