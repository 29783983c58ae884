package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of milestone target dates.
const DateLayout = "2006-01-02"

// CareerPath is a named career goal broken into milestones
type CareerPath struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Milestone is one dated step on a career path
type Milestone struct {
	ID           uuid.UUID  `json:"id"`
	CareerPathID uuid.UUID  `json:"career_path_id"`
	UserID       uuid.UUID  `json:"user_id"`
	Title        string     `json:"title"`
	TargetDate   *time.Time `json:"target_date"`
	Completed    bool       `json:"completed"`
	Position     int        `json:"position"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CareerPathRequest is the body for creating a career path
type CareerPathRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// MilestoneRequest is the body for adding a milestone. TargetDate is YYYY-MM-DD.
type MilestoneRequest struct {
	Title      string  `json:"title" validate:"required,max=200"`
	TargetDate *string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}
