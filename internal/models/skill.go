package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// MaxLevel is the top of the 0..5 proficiency scale.
const MaxLevel = 5

// DefaultCategory is assigned to skills created without a category.
const DefaultCategory = "General"

// Skill is a tracked proficiency owned by a single user.
// Level and TargetLevel are nil when the user has not rated them.
type Skill struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	Level          *int      `json:"level"`
	Category       string    `json:"category"`
	TargetLevel    *int      `json:"target_level"`
	HoursPracticed float64   `json:"hours_practiced"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasGap reports whether both levels are rated and the current one is below target.
func (s *Skill) HasGap() bool {
	return s.Level != nil && s.TargetLevel != nil && *s.Level < *s.TargetLevel
}

// SkillProgress records a level change or a block of practice hours.
type SkillProgress struct {
	ID          uuid.UUID `json:"id"`
	SkillID     uuid.UUID `json:"skill_id"`
	UserID      uuid.UUID `json:"user_id"`
	LevelBefore int       `json:"level_before"`
	LevelAfter  int       `json:"level_after"`
	HoursAdded  float64   `json:"hours_added"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SkillRequest is the body for creating or replacing a skill
type SkillRequest struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Level          *int    `json:"level" validate:"omitempty,min=0,max=5"`
	Category       string  `json:"category" validate:"max=100"`
	TargetLevel    *int    `json:"target_level" validate:"omitempty,min=0,max=5"`
	HoursPracticed float64 `json:"hours_practiced" validate:"gte=0"`
	Notes          *string `json:"notes"`
}

// PracticeRequest is the body for logging practice hours
type PracticeRequest struct {
	Hours float64 `json:"hours" validate:"gt=0"`
	Notes string  `json:"notes"`
}

// LevelChange returns the progress entry an update from before to after
// produces, or nil when either level is unrated or the level did not move.
func LevelChange(before, after *Skill) *SkillProgress {
	if before.Level == nil || after.Level == nil || *before.Level == *after.Level {
		return nil
	}
	return &SkillProgress{
		SkillID:     after.ID,
		UserID:      after.UserID,
		LevelBefore: *before.Level,
		LevelAfter:  *after.Level,
		HoursAdded:  after.HoursPracticed - before.HoursPracticed,
		Notes:       fmt.Sprintf("Level updated from %d to %d", *before.Level, *after.Level),
	}
}

// PracticeNote is the progress note used when a practice log carries none
func PracticeNote(hours float64) string {
	return "Added " + strconv.FormatFloat(hours, 'f', -1, 64) + " practice hours"
}
