package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/talent-tracker/internal/auth"
	"github.com/terra-clan/talent-tracker/internal/models"
)

func TestLearning_ModulesItemsAndToggle(t *testing.T) {
	env := newTestEnv(t, &stubProvider{})

	var first, second models.LearningModule
	rec := env.do(t, http.MethodPost, "/api/v1/learning/modules", env.token, models.LearningModuleRequest{Title: "Foundations"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeData(t, rec, &first)
	rec = env.do(t, http.MethodPost, "/api/v1/learning/modules", env.token, models.LearningModuleRequest{Title: "Distributed systems"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeData(t, rec, &second)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	url := "https://go.dev/tour/"
	rec = env.do(t, http.MethodPost, "/api/v1/learning/modules/"+first.ID.String()+"/items", env.token,
		models.LearningItemRequest{Title: "Take the tour", URL: &url})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item models.LearningItem
	decodeData(t, rec, &item)
	assert.False(t, item.Completed)

	rec = env.do(t, http.MethodPatch, "/api/v1/learning/items/"+item.ID.String()+"/toggle", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &item)
	assert.True(t, item.Completed)

	rec = env.do(t, http.MethodGet, "/api/v1/learning/modules", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Modules []models.LearningModule `json:"modules"`
		Total   int                     `json:"total"`
	}
	decodeData(t, rec, &list)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Foundations", list.Modules[0].Title)
	require.Len(t, list.Modules[0].Items, 1)
	assert.True(t, list.Modules[0].Items[0].Completed)
	assert.Empty(t, list.Modules[1].Items)

	rec = env.do(t, http.MethodDelete, "/api/v1/learning/items/"+item.ID.String(), env.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/v1/learning/modules/"+second.ID.String(), env.token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLearning_Validation(t *testing.T) {
	env := newTestEnv(t, &stubProvider{})

	rec := env.do(t, http.MethodPost, "/api/v1/learning/modules", env.token, models.LearningModuleRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var mod models.LearningModule
	rec = env.do(t, http.MethodPost, "/api/v1/learning/modules", env.token, models.LearningModuleRequest{Title: "Go"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &mod)

	bad := "not a url"
	rec = env.do(t, http.MethodPost, "/api/v1/learning/modules/"+mod.ID.String()+"/items", env.token,
		models.LearningItemRequest{Title: "x", URL: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeErrorCode(t, rec))
}

func TestLearning_ForeignModuleIsNotFound(t *testing.T) {
	env := newTestEnv(t, &stubProvider{})

	var mod models.LearningModule
	rec := env.do(t, http.MethodPost, "/api/v1/learning/modules", env.token, models.LearningModuleRequest{Title: "Mine"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, rec, &mod)

	intruder := issueToken(t, env.verifier, auth.Caller{UserID: uuid.New()})
	rec = env.do(t, http.MethodPost, "/api/v1/learning/modules/"+mod.ID.String()+"/items", intruder,
		models.LearningItemRequest{Title: "Sneaky"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/v1/learning/modules/"+mod.ID.String(), intruder, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.repo.items)
}
