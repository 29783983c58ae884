// Package coach builds the career-coach prompt from a user's own data and
// forwards it to a chat-completion provider.
package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/terra-clan/talent-tracker/internal/auth"
	"github.com/terra-clan/talent-tracker/internal/llm"
	"github.com/terra-clan/talent-tracker/internal/models"
)

const (
	// Model is the chat-completion model every coach request uses.
	Model = "gpt-4o-mini"
	// Temperature is fixed for every coach request.
	Temperature = 0.4

	// MaxMessages caps the conversation window forwarded to the provider.
	MaxMessages = 12
	// RecentJobsLimit and RecentInterviewsLimit bound the context reads.
	RecentJobsLimit       = 10
	RecentInterviewsLimit = 5
)

var (
	// ErrNotConfigured means no provider credential is available.
	ErrNotConfigured = errors.New("coach: chat provider is not configured")
	// ErrUnauthenticated means the request carries no caller.
	ErrUnauthenticated = errors.New("coach: unauthenticated")
	// ErrUpstream wraps any data-store or provider failure.
	ErrUpstream = errors.New("coach: upstream request failed")
)

// Store is the read-only view of the data store the coach needs
type Store interface {
	ListSkills(ctx context.Context, userID uuid.UUID) ([]*models.Skill, error)
	ListRecentJobs(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Job, error)
	ListRecentInterviews(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Interview, error)
}

// Service answers coaching conversations
type Service struct {
	store    Store
	provider llm.Provider
}

// NewService creates a coach service. A nil provider means the credential is
// missing; every Reply then fails with ErrNotConfigured.
func NewService(store Store, provider llm.Provider) *Service {
	return &Service{store: store, provider: provider}
}

// Check reports whether a request from caller can be served at all: a
// missing credential wins over a missing caller. It touches neither the store
// nor the provider.
func (s *Service) Check(caller auth.Caller) error {
	if s.provider == nil {
		return ErrNotConfigured
	}
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// Reply answers the conversation as the given caller.
func (s *Service) Reply(ctx context.Context, caller auth.Caller, messages []models.ChatMessage) (string, error) {
	if err := s.Check(caller); err != nil {
		return "", err
	}

	snapshot, err := s.gather(ctx, caller.UserID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	history := BuildMessages(snapshot, messages)

	slog.Debug("sending coach request",
		"user_id", caller.UserID,
		"messages", len(history),
		"skills", len(snapshot.Skills),
		"jobs", len(snapshot.Jobs),
		"interviews", len(snapshot.Interviews),
	)

	reply, err := s.provider.Chat(ctx, history, llm.WithModel(Model), llm.WithTemperature(Temperature))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return reply, nil
}

// gather runs the three independent reads concurrently
func (s *Service) gather(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	var snap Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		skills, err := s.store.ListSkills(gCtx, userID)
		if err != nil {
			return fmt.Errorf("list skills: %w", err)
		}
		snap.Skills = skills
		return nil
	})

	g.Go(func() error {
		jobs, err := s.store.ListRecentJobs(gCtx, userID, RecentJobsLimit)
		if err != nil {
			return fmt.Errorf("list recent jobs: %w", err)
		}
		snap.Jobs = jobs
		return nil
	})

	g.Go(func() error {
		interviews, err := s.store.ListRecentInterviews(gCtx, userID, RecentInterviewsLimit)
		if err != nil {
			return fmt.Errorf("list recent interviews: %w", err)
		}
		snap.Interviews = interviews
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// BuildMessages assembles the provider message list: the system instruction
// with the context summary, then the last MaxMessages conversation turns.
func BuildMessages(snapshot Snapshot, messages []models.ChatMessage) []llm.Message {
	window := Window(messages)
	out := make([]llm.Message, 0, len(window)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: SystemInstruction + Summarize(snapshot)})
	for _, m := range window {
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

// Window returns the trailing MaxMessages entries of messages
func Window(messages []models.ChatMessage) []models.ChatMessage {
	if len(messages) > MaxMessages {
		return messages[len(messages)-MaxMessages:]
	}
	return messages
}
