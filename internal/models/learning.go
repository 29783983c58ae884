package models

import (
	"time"

	"github.com/google/uuid"
)

// LearningModule groups learning items in a user's learning plan
type LearningModule struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Position    int             `json:"position"`
	Items       []*LearningItem `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LearningItem is one checkable step inside a module
type LearningItem struct {
	ID        uuid.UUID `json:"id"`
	ModuleID  uuid.UUID `json:"module_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	URL       *string   `json:"url"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// LearningModuleRequest is the body for creating a module
type LearningModuleRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// LearningItemRequest is the body for adding an item to a module
type LearningItemRequest struct {
	Title string  `json:"title" validate:"required,max=200"`
	URL   *string `json:"url" validate:"omitempty,url"`
}
