package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/talent-tracker/internal/models"
)

func TestRecommendations_OpenByPriority(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	low, high := 0, 4
	beginner := &models.Skill{UserID: owner, Name: "Rust", Level: &low, Category: "Backend"}
	expert := &models.Skill{UserID: owner, Name: "Go", Level: &high, Category: "Backend"}
	require.NoError(t, repo.CreateSkill(ctx, beginner))
	require.NoError(t, repo.CreateSkill(ctx, expert))

	require.NoError(t, repo.CreateRecommendations(ctx, models.Recommend(expert)))
	require.NoError(t, repo.CreateRecommendations(ctx, models.Recommend(beginner)))

	open, err := repo.ListOpenRecommendations(ctx, owner)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, 5, open[0].Priority)
	assert.Equal(t, models.RecommendCourse, open[0].Type)
	assert.Equal(t, "Go Certification", open[1].Title)

	_, err = repo.CompleteRecommendation(ctx, uuid.New(), open[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	done, err := repo.CompleteRecommendation(ctx, owner, open[0].ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	open, err = repo.ListOpenRecommendations(ctx, owner)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, expert.ID, open[0].SkillID)
}

func TestLearning_ModulesAndItems(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	first := &models.LearningModule{UserID: owner, Title: "Foundations"}
	second := &models.LearningModule{UserID: owner, Title: "Advanced"}
	require.NoError(t, repo.CreateLearningModule(ctx, first))
	require.NoError(t, repo.CreateLearningModule(ctx, second))
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	item := &models.LearningItem{ModuleID: first.ID, UserID: owner, Title: "Read the tour"}
	require.NoError(t, repo.CreateLearningItem(ctx, item))
	assert.Equal(t, 0, item.Position)

	err := repo.CreateLearningItem(ctx, &models.LearningItem{ModuleID: first.ID, UserID: uuid.New(), Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	toggled, err := repo.ToggleLearningItem(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	toggled, err = repo.ToggleLearningItem(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	modules, err := repo.ListLearningModules(ctx, owner)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "Foundations", modules[0].Title)
	require.Len(t, modules[0].Items, 1)
	assert.Empty(t, modules[1].Items)

	require.NoError(t, repo.DeleteLearningModule(ctx, owner, first.ID))
	_, err = repo.ToggleLearningItem(ctx, owner, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCareer_PathsAndMilestones(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	path := &models.CareerPath{UserID: owner, Title: "Staff Engineer"}
	require.NoError(t, repo.CreateCareerPath(ctx, path))

	due := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	m := &models.Milestone{CareerPathID: path.ID, UserID: owner, Title: "Lead a project", TargetDate: &due}
	require.NoError(t, repo.CreateMilestone(ctx, m))
	require.NoError(t, repo.CreateMilestone(ctx, &models.Milestone{CareerPathID: path.ID, UserID: owner, Title: "Mentor"}))

	list, err := repo.ListMilestones(ctx, owner, path.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].TargetDate)
	assert.Equal(t, "2027-03-01", list[0].TargetDate.Format(models.DateLayout))
	assert.Nil(t, list[1].TargetDate)
	assert.Equal(t, 1, list[1].Position)

	_, err = repo.ListMilestones(ctx, uuid.New(), path.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	toggled, err := repo.ToggleMilestone(ctx, owner, m.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	require.NoError(t, repo.DeleteCareerPath(ctx, owner, path.ID))
	assert.ErrorIs(t, repo.DeleteMilestone(ctx, owner, m.ID), ErrNotFound)
}

func TestLibrary_SaveAndSearch(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	catalog, err := repo.ListResources(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, catalog)

	interviews, err := repo.ListResources(ctx, "INTERVIEWS")
	require.NoError(t, err)
	require.NotEmpty(t, interviews)
	for _, res := range interviews {
		assert.True(t, res.Matches("interviews"))
	}

	sr := &models.SavedResource{UserID: owner, ResourceID: interviews[0].ID}
	require.NoError(t, repo.SaveResource(ctx, sr))
	require.NotNil(t, sr.Resource)
	assert.Equal(t, interviews[0].Title, sr.Resource.Title)

	err = repo.SaveResource(ctx, &models.SavedResource{UserID: owner, ResourceID: interviews[0].ID})
	assert.ErrorIs(t, err, ErrConflict)
	err = repo.SaveResource(ctx, &models.SavedResource{UserID: owner, ResourceID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)

	library, err := repo.ListLibrary(ctx, owner, "interviews")
	require.NoError(t, err)
	require.Len(t, library, 1)

	library, err = repo.ListLibrary(ctx, owner, "no such resource anywhere")
	require.NoError(t, err)
	assert.Empty(t, library)

	assert.ErrorIs(t, repo.DeleteSavedResource(ctx, uuid.New(), sr.ID), ErrNotFound)
	require.NoError(t, repo.DeleteSavedResource(ctx, owner, sr.ID))
}
