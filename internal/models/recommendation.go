package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecommendationType is the kind of learning step suggested for a skill
type RecommendationType string

const (
	RecommendCourse        RecommendationType = "course"
	RecommendPractice      RecommendationType = "practice"
	RecommendProject       RecommendationType = "project"
	RecommendCertification RecommendationType = "certification"
)

// SkillRecommendation is a suggested next step for one of the user's skills
type SkillRecommendation struct {
	ID          uuid.UUID          `json:"id"`
	SkillID     uuid.UUID          `json:"skill_id"`
	UserID      uuid.UUID          `json:"user_id"`
	Type        RecommendationType `json:"recommendation_type"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	URL         *string            `json:"url"`
	Priority    int                `json:"priority"`
	Completed   bool               `json:"completed"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Recommend derives the rule-based recommendations for a skill from its level:
// unrated or below 2 gets a beginner course, 2 and 3 a project, 4 and up a
// certification.
func Recommend(sk *Skill) []*SkillRecommendation {
	rec := &SkillRecommendation{SkillID: sk.ID, UserID: sk.UserID}

	switch {
	case sk.Level == nil || *sk.Level < 2:
		rec.Type = RecommendCourse
		rec.Title = fmt.Sprintf("Beginner %s Course", sk.Name)
		rec.Description = strPtr(fmt.Sprintf("Start with fundamentals of %s", sk.Name))
		rec.Priority = 5
	case *sk.Level < 4:
		rec.Type = RecommendProject
		rec.Title = fmt.Sprintf("Intermediate %s Project", sk.Name)
		rec.Description = strPtr(fmt.Sprintf("Build a real-world project using %s", sk.Name))
		rec.Priority = 4
	default:
		rec.Type = RecommendCertification
		rec.Title = fmt.Sprintf("%s Certification", sk.Name)
		rec.Description = strPtr(fmt.Sprintf("Get certified in %s", sk.Name))
		rec.Priority = 3
	}

	return []*SkillRecommendation{rec}
}

func strPtr(s string) *string { return &s }
