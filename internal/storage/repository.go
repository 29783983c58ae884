package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("storage: not found")

// ErrConflict is returned when a write would duplicate a unique row.
var ErrConflict = errors.New("storage: conflict")

// Repository defines persistence for career records. Every method is scoped to
// userID; rows owned by other users are never read or written.
type Repository interface {
	// Skills
	ListSkills(ctx context.Context, userID uuid.UUID) ([]*models.Skill, error)
	GetSkill(ctx context.Context, userID, id uuid.UUID) (*models.Skill, error)
	CreateSkill(ctx context.Context, sk *models.Skill) error
	UpdateSkill(ctx context.Context, sk *models.Skill) (*models.SkillProgress, error)
	LogPractice(ctx context.Context, userID, id uuid.UUID, hours float64, notes string) (*models.Skill, *models.SkillProgress, error)
	DeleteSkill(ctx context.Context, userID, id uuid.UUID) error

	// Skill progress
	ListSkillProgress(ctx context.Context, userID uuid.UUID) ([]*models.SkillProgress, error)

	// Skill recommendations
	CreateRecommendations(ctx context.Context, recs []*models.SkillRecommendation) error
	ListOpenRecommendations(ctx context.Context, userID uuid.UUID) ([]*models.SkillRecommendation, error)
	CompleteRecommendation(ctx context.Context, userID, id uuid.UUID) (*models.SkillRecommendation, error)

	// Jobs
	ListJobs(ctx context.Context, userID uuid.UUID) ([]*models.Job, error)
	ListRecentJobs(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Job, error)
	GetJob(ctx context.Context, userID, id uuid.UUID) (*models.Job, error)
	CreateJob(ctx context.Context, j *models.Job) error
	UpdateJob(ctx context.Context, j *models.Job) error
	UpdateJobStatus(ctx context.Context, userID, id uuid.UUID, status models.JobStatus) error
	DeleteJob(ctx context.Context, userID, id uuid.UUID) error

	// Interviews
	ListRecentInterviews(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Interview, error)
	GetInterview(ctx context.Context, userID, id uuid.UUID) (*models.Interview, error)
	CreateInterview(ctx context.Context, iv *models.Interview) error
	UpdateInterview(ctx context.Context, iv *models.Interview) error
	DeleteInterview(ctx context.Context, userID, id uuid.UUID) error

	// Learning plan
	ListLearningModules(ctx context.Context, userID uuid.UUID) ([]*models.LearningModule, error)
	CreateLearningModule(ctx context.Context, m *models.LearningModule) error
	DeleteLearningModule(ctx context.Context, userID, id uuid.UUID) error
	CreateLearningItem(ctx context.Context, it *models.LearningItem) error
	ToggleLearningItem(ctx context.Context, userID, id uuid.UUID) (*models.LearningItem, error)
	DeleteLearningItem(ctx context.Context, userID, id uuid.UUID) error

	// Career paths
	ListCareerPaths(ctx context.Context, userID uuid.UUID) ([]*models.CareerPath, error)
	CreateCareerPath(ctx context.Context, p *models.CareerPath) error
	DeleteCareerPath(ctx context.Context, userID, id uuid.UUID) error
	ListMilestones(ctx context.Context, userID, pathID uuid.UUID) ([]*models.Milestone, error)
	CreateMilestone(ctx context.Context, m *models.Milestone) error
	ToggleMilestone(ctx context.Context, userID, id uuid.UUID) (*models.Milestone, error)
	DeleteMilestone(ctx context.Context, userID, id uuid.UUID) error

	// Resource catalog and library. The catalog is shared by all users.
	ListResources(ctx context.Context, query string) ([]*models.Resource, error)
	SaveResource(ctx context.Context, sr *models.SavedResource) error
	ListLibrary(ctx context.Context, userID uuid.UUID, query string) ([]*models.SavedResource, error)
	DeleteSavedResource(ctx context.Context, userID, id uuid.UUID) error

	// Stats
	CountRecords(ctx context.Context, userID uuid.UUID) (*models.Stats, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
