package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/talent-tracker/internal/auth"
	"github.com/terra-clan/talent-tracker/internal/models"
)

type recommendationList struct {
	Recommendations []models.SkillRecommendation `json:"recommendations"`
	Total           int                          `json:"total"`
}

func TestRecommendations_GenerateByLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    *int
		wantType models.RecommendationType
		title    string
		priority int
	}{
		{"unrated skill gets a course", nil, models.RecommendCourse, "Beginner Terraform Course", 5},
		{"level 1 gets a course", intPtr(1), models.RecommendCourse, "Beginner Terraform Course", 5},
		{"level 2 gets a project", intPtr(2), models.RecommendProject, "Intermediate Terraform Project", 4},
		{"level 3 gets a project", intPtr(3), models.RecommendProject, "Intermediate Terraform Project", 4},
		{"level 4 gets a certification", intPtr(4), models.RecommendCertification, "Terraform Certification", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &stubProvider{})
			sk := &models.Skill{UserID: env.caller.UserID, Name: "Terraform", Level: tt.level}
			require.NoError(t, env.repo.CreateSkill(context.Background(), sk))

			rec := env.do(t, http.MethodPost, "/api/v1/skills/"+sk.ID.String()+"/recommendations", env.token, nil)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var body recommendationList
			decodeData(t, rec, &body)
			require.Equal(t, 1, body.Total)
			got := body.Recommendations[0]
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.priority, got.Priority)
			assert.Equal(t, sk.ID, got.SkillID)
			assert.Equal(t, env.caller.UserID, got.UserID)
		})
	}
}

func TestRecommendations_ListOpenAndComplete(t *testing.T) {
	env := newTestEnv(t, &stubProvider{})
	ctx := context.Background()

	expert := &models.Skill{UserID: env.caller.UserID, Name: "Go", Level: intPtr(5)}
	novice := &models.Skill{UserID: env.caller.UserID, Name: "Rust", Level: intPtr(0)}
	require.NoError(t, env.repo.CreateSkill(ctx, expert))
	require.NoError(t, env.repo.CreateSkill(ctx, novice))

	for _, sk := range []*models.Skill{expert, novice} {
		rec := env.do(t, http.MethodPost, "/api/v1/skills/"+sk.ID.String()+"/recommendations", env.token, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/api/v1/skills/recommendations", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var open recommendationList
	decodeData(t, rec, &open)
	require.Equal(t, 2, open.Total)
	assert.Equal(t, "Beginner Rust Course", open.Recommendations[0].Title)
	assert.Equal(t, "Go Certification", open.Recommendations[1].Title)

	first := open.Recommendations[0].ID.String()
	intruder := issueToken(t, env.verifier, auth.Caller{UserID: uuid.New()})
	rec = env.do(t, http.MethodPatch, "/api/v1/skills/recommendations/"+first+"/complete", intruder, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/v1/skills/recommendations/"+first+"/complete", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var done models.SkillRecommendation
	decodeData(t, rec, &done)
	assert.True(t, done.Completed)

	rec = env.do(t, http.MethodGet, "/api/v1/skills/recommendations", env.token, nil)
	decodeData(t, rec, &open)
	require.Equal(t, 1, open.Total)
	assert.Equal(t, expert.ID, open.Recommendations[0].SkillID)
}

func TestRecommendations_ForeignSkillIsNotFound(t *testing.T) {
	env := newTestEnv(t, &stubProvider{})
	sk := &models.Skill{UserID: uuid.New(), Name: "Go"}
	require.NoError(t, env.repo.CreateSkill(context.Background(), sk))

	rec := env.do(t, http.MethodPost, "/api/v1/skills/"+sk.ID.String()+"/recommendations", env.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.repo.recommendations)
}
