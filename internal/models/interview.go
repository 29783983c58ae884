package models

import (
	"time"

	"github.com/google/uuid"
)

// InterviewCompleted is the status the coach counts as a finished interview.
const InterviewCompleted = "completed"

// Interview is a scheduled or completed interview
type Interview struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	JobID         *uuid.UUID `json:"job_id,omitempty"`
	InterviewType string     `json:"interview_type"`
	Status        string     `json:"status"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	Rating        *int       `json:"rating"`
	OutcomeNotes  string     `json:"outcome_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// InterviewRequest is the body for creating or replacing an interview
type InterviewRequest struct {
	JobID         *uuid.UUID `json:"job_id"`
	InterviewType string     `json:"interview_type" validate:"required,max=100"`
	Status        string     `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	ScheduledAt   *time.Time `json:"scheduled_at"`
	Rating        *int       `json:"rating" validate:"omitempty,min=0,max=5"`
	OutcomeNotes  string     `json:"outcome_notes"`
}
