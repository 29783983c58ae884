package models

import "time"

// Chat roles accepted from the client. The system role is reserved for the
// coaching instruction and never accepted from callers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one conversation turn held by the client
type ChatMessage struct {
	Role      string     `json:"role" validate:"required,oneof=user assistant"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// CoachRequest is the body of POST /api/coach
type CoachRequest struct {
	Messages []ChatMessage `json:"messages" validate:"dive"`
}

// CoachResponse is the success body of POST /api/coach
type CoachResponse struct {
	Reply string `json:"reply"`
}

// QuickAction is a canned coaching prompt offered by the chat UI
type QuickAction struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
}

// Stats holds per-user record counts
type Stats struct {
	SkillsCount     int `json:"skills_count"`
	JobsCount       int `json:"jobs_count"`
	InterviewsCount int `json:"interviews_count"`
}
