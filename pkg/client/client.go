// Package client is a Go SDK for the talent-tracker HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/talent-tracker/internal/models"
)

// Client is a Go SDK for talent-tracker API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client that authenticates with the given access token
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error %d: %s - %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Coach

// Coach sends the conversation and returns the coach's reply
func (c *Client) Coach(ctx context.Context, messages []models.ChatMessage) (string, error) {
	var out models.CoachResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/coach", models.CoachRequest{Messages: messages}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// QuickActions lists the canned coach prompts
func (c *Client) QuickActions(ctx context.Context) ([]models.QuickAction, error) {
	data, err := call[struct {
		QuickActions []models.QuickAction `json:"quick_actions"`
	}](ctx, c, http.MethodGet, "/api/v1/coach/quick-actions", nil)
	if err != nil {
		return nil, err
	}
	return data.QuickActions, nil
}

// Stats returns the caller's record counts
func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	return call[*models.Stats](ctx, c, http.MethodGet, "/api/v1/stats", nil)
}

// Skills

// ListSkills lists the caller's skills, newest first
func (c *Client) ListSkills(ctx context.Context) ([]*models.Skill, error) {
	data, err := call[struct {
		Skills []*models.Skill `json:"skills"`
	}](ctx, c, http.MethodGet, "/api/v1/skills", nil)
	if err != nil {
		return nil, err
	}
	return data.Skills, nil
}

// CreateSkill creates a skill
func (c *Client) CreateSkill(ctx context.Context, req models.SkillRequest) (*models.Skill, error) {
	return call[*models.Skill](ctx, c, http.MethodPost, "/api/v1/skills", req)
}

// UpdateSkill replaces a skill
func (c *Client) UpdateSkill(ctx context.Context, id uuid.UUID, req models.SkillRequest) (*models.Skill, error) {
	return call[*models.Skill](ctx, c, http.MethodPut, "/api/v1/skills/"+id.String(), req)
}

// DeleteSkill deletes a skill
func (c *Client) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodDelete, "/api/v1/skills/"+id.String(), nil)
	return err
}

// LogPractice adds practice hours to a skill
func (c *Client) LogPractice(ctx context.Context, id uuid.UUID, hours float64, notes string) (*models.SkillProgress, error) {
	data, err := call[struct {
		Progress *models.SkillProgress `json:"progress"`
	}](ctx, c, http.MethodPost, "/api/v1/skills/"+id.String()+"/practice", models.PracticeRequest{Hours: hours, Notes: notes})
	if err != nil {
		return nil, err
	}
	return data.Progress, nil
}

// GenerateRecommendations derives recommendations for a skill from its level
func (c *Client) GenerateRecommendations(ctx context.Context, skillID uuid.UUID) ([]*models.SkillRecommendation, error) {
	data, err := call[struct {
		Recommendations []*models.SkillRecommendation `json:"recommendations"`
	}](ctx, c, http.MethodPost, "/api/v1/skills/"+skillID.String()+"/recommendations", nil)
	if err != nil {
		return nil, err
	}
	return data.Recommendations, nil
}

// Recommendations lists open recommendations, highest priority first
func (c *Client) Recommendations(ctx context.Context) ([]*models.SkillRecommendation, error) {
	data, err := call[struct {
		Recommendations []*models.SkillRecommendation `json:"recommendations"`
	}](ctx, c, http.MethodGet, "/api/v1/skills/recommendations", nil)
	if err != nil {
		return nil, err
	}
	return data.Recommendations, nil
}

// CompleteRecommendation marks a recommendation as done
func (c *Client) CompleteRecommendation(ctx context.Context, id uuid.UUID) (*models.SkillRecommendation, error) {
	return call[*models.SkillRecommendation](ctx, c, http.MethodPatch, "/api/v1/skills/recommendations/"+id.String()+"/complete", nil)
}

// Jobs

// ListJobs lists the caller's job applications
func (c *Client) ListJobs(ctx context.Context) ([]*models.Job, error) {
	data, err := call[struct {
		Jobs []*models.Job `json:"jobs"`
	}](ctx, c, http.MethodGet, "/api/v1/jobs", nil)
	if err != nil {
		return nil, err
	}
	return data.Jobs, nil
}

// Board returns the kanban columns, optionally filtered by company or title
func (c *Client) Board(ctx context.Context, query string) ([]models.BoardColumn, error) {
	path := "/api/v1/jobs/board"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	data, err := call[struct {
		Columns []models.BoardColumn `json:"columns"`
	}](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return data.Columns, nil
}

// CreateJob creates a job application
func (c *Client) CreateJob(ctx context.Context, req models.JobRequest) (*models.Job, error) {
	return call[*models.Job](ctx, c, http.MethodPost, "/api/v1/jobs", req)
}

// MoveJob moves a job to another kanban column
func (c *Client) MoveJob(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodPatch, "/api/v1/jobs/"+id.String()+"/status", models.MoveJobRequest{Status: status})
	return err
}

// DeleteJob deletes a job application
func (c *Client) DeleteJob(ctx context.Context, id uuid.UUID) error {
	_, err := call[json.RawMessage](ctx, c, http.MethodDelete, "/api/v1/jobs/"+id.String(), nil)
	return err
}

// Interviews

// ListInterviews lists the caller's interviews, newest first
func (c *Client) ListInterviews(ctx context.Context) ([]*models.Interview, error) {
	data, err := call[struct {
		Interviews []*models.Interview `json:"interviews"`
	}](ctx, c, http.MethodGet, "/api/v1/interviews", nil)
	if err != nil {
		return nil, err
	}
	return data.Interviews, nil
}

// CreateInterview records an interview
func (c *Client) CreateInterview(ctx context.Context, req models.InterviewRequest) (*models.Interview, error) {
	return call[*models.Interview](ctx, c, http.MethodPost, "/api/v1/interviews", req)
}

// Learning plan

// LearningModules lists the caller's modules with their items
func (c *Client) LearningModules(ctx context.Context) ([]*models.LearningModule, error) {
	data, err := call[struct {
		Modules []*models.LearningModule `json:"modules"`
	}](ctx, c, http.MethodGet, "/api/v1/learning/modules", nil)
	if err != nil {
		return nil, err
	}
	return data.Modules, nil
}

// CreateLearningModule appends a module to the learning plan
func (c *Client) CreateLearningModule(ctx context.Context, req models.LearningModuleRequest) (*models.LearningModule, error) {
	return call[*models.LearningModule](ctx, c, http.MethodPost, "/api/v1/learning/modules", req)
}

// AddLearningItem appends an item to a module
func (c *Client) AddLearningItem(ctx context.Context, moduleID uuid.UUID, req models.LearningItemRequest) (*models.LearningItem, error) {
	return call[*models.LearningItem](ctx, c, http.MethodPost, "/api/v1/learning/modules/"+moduleID.String()+"/items", req)
}

// ToggleLearningItem flips an item's completed flag
func (c *Client) ToggleLearningItem(ctx context.Context, id uuid.UUID) (*models.LearningItem, error) {
	return call[*models.LearningItem](ctx, c, http.MethodPatch, "/api/v1/learning/items/"+id.String()+"/toggle", nil)
}

// Career paths

// CareerPaths lists the caller's career paths
func (c *Client) CareerPaths(ctx context.Context) ([]*models.CareerPath, error) {
	data, err := call[struct {
		Paths []*models.CareerPath `json:"paths"`
	}](ctx, c, http.MethodGet, "/api/v1/career/paths", nil)
	if err != nil {
		return nil, err
	}
	return data.Paths, nil
}

// CreateCareerPath creates a career path
func (c *Client) CreateCareerPath(ctx context.Context, req models.CareerPathRequest) (*models.CareerPath, error) {
	return call[*models.CareerPath](ctx, c, http.MethodPost, "/api/v1/career/paths", req)
}

// AddMilestone appends a milestone to a career path
func (c *Client) AddMilestone(ctx context.Context, pathID uuid.UUID, req models.MilestoneRequest) (*models.Milestone, error) {
	return call[*models.Milestone](ctx, c, http.MethodPost, "/api/v1/career/paths/"+pathID.String()+"/milestones", req)
}

// ToggleMilestone flips a milestone's completed flag
func (c *Client) ToggleMilestone(ctx context.Context, id uuid.UUID) (*models.Milestone, error) {
	return call[*models.Milestone](ctx, c, http.MethodPatch, "/api/v1/career/milestones/"+id.String()+"/toggle", nil)
}

// Resources

// Resources searches the shared catalog by title, source or tag
func (c *Client) Resources(ctx context.Context, query string) ([]*models.Resource, error) {
	path := "/api/v1/resources"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	data, err := call[struct {
		Resources []*models.Resource `json:"resources"`
	}](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return data.Resources, nil
}

// Library lists the caller's saved resources
func (c *Client) Library(ctx context.Context, query string) ([]*models.SavedResource, error) {
	path := "/api/v1/library"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	data, err := call[struct {
		Library []*models.SavedResource `json:"library"`
	}](ctx, c, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return data.Library, nil
}

// SaveResource adds a catalog resource to the caller's library
func (c *Client) SaveResource(ctx context.Context, req models.SaveResourceRequest) (*models.SavedResource, error) {
	return call[*models.SavedResource](ctx, c, http.MethodPost, "/api/v1/library", req)
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

// call performs a request against an enveloped /api/v1 route
func call[T any](ctx context.Context, c *Client, method, path string, in interface{}) (T, error) {
	var result envelope[T]
	if err := c.doJSON(ctx, method, path, in, &result); err != nil {
		var zero T
		return zero, err
	}
	if !result.Success {
		var zero T
		apiErr := &APIError{StatusCode: http.StatusOK}
		if result.Error != nil {
			apiErr.Code, apiErr.Message = result.Error.Code, result.Error.Message
		}
		return zero, apiErr
	}
	return result.Data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, parseError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// parseError understands both the /api/v1 envelope and the flat
// {"error": "..."} shape used by the coach route and auth failures.
func parseError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}

	var shape struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &shape); err != nil || len(shape.Error) == 0 {
		return apiErr
	}

	var flat string
	if err := json.Unmarshal(shape.Error, &flat); err == nil {
		apiErr.Code, apiErr.Message = "", flat
		if shape.Message != "" {
			apiErr.Message = flat + ": " + shape.Message
		}
		return apiErr
	}

	var nested struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(shape.Error, &nested); err == nil {
		apiErr.Code, apiErr.Message = nested.Code, nested.Message
	}
	return apiErr
}
