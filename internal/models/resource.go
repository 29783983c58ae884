package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resource is an entry in the shared learning-resource catalog
type Resource struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Source    *string   `json:"source"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether the title, source or any tag contains query,
// ignoring case. An empty query matches everything.
func (r *Resource) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	if r.Source != nil && strings.Contains(strings.ToLower(*r.Source), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SavedResource is a catalog resource in a user's library
type SavedResource struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ResourceID uuid.UUID `json:"resource_id"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	Resource   *Resource `json:"resource"`
}

// SaveResourceRequest is the body for adding a resource to the library
type SaveResourceRequest struct {
	ResourceID uuid.UUID `json:"resource_id" validate:"required"`
	Notes      *string   `json:"notes" validate:"omitempty,max=2000"`
}
