package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the kanban column a job application sits in
type JobStatus string

const (
	JobSaved     JobStatus = "saved"
	JobApplied   JobStatus = "applied"
	JobInterview JobStatus = "interview"
	JobOffer     JobStatus = "offer"
	JobRejected  JobStatus = "rejected"
)

// JobStatuses lists the board columns in display order.
var JobStatuses = []JobStatus{JobSaved, JobApplied, JobInterview, JobOffer, JobRejected}

// Valid reports whether s is one of the known columns
func (s JobStatus) Valid() bool {
	for _, known := range JobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Job is a tracked job application
type Job struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Status      JobStatus `json:"status"`
	URL         string    `json:"url,omitempty"`
	Location    string    `json:"location,omitempty"`
	RemoteType  string    `json:"remote_type,omitempty"`
	SalaryRange string    `json:"salary_range,omitempty"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobRequest is the body for creating or replacing a job
type JobRequest struct {
	Company     string    `json:"company" validate:"required,max=200"`
	Title       string    `json:"title" validate:"required,max=200"`
	Status      JobStatus `json:"status" validate:"omitempty,oneof=saved applied interview offer rejected"`
	URL         string    `json:"url" validate:"omitempty,url"`
	Location    string    `json:"location" validate:"max=200"`
	RemoteType  string    `json:"remote_type" validate:"max=50"`
	SalaryRange string    `json:"salary_range" validate:"max=100"`
	Priority    int       `json:"priority"`
}

// MoveJobRequest is the body for a kanban drag-and-drop
type MoveJobRequest struct {
	Status JobStatus `json:"status" validate:"required"`
}

// BoardColumn is one kanban column
type BoardColumn struct {
	Status JobStatus `json:"status"`
	Jobs   []*Job    `json:"jobs"`
}
