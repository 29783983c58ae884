package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/talent-tracker/internal/coach"
	"github.com/terra-clan/talent-tracker/internal/config"
	"github.com/terra-clan/talent-tracker/internal/prompts"
	"github.com/terra-clan/talent-tracker/internal/ratelimit"
	"github.com/terra-clan/talent-tracker/internal/services"
	"github.com/terra-clan/talent-tracker/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	repo           storage.Repository
	coach          *coach.Service
	quickActions   *prompts.Loader
	registry       *services.Registry
	limiter        ratelimit.Limiter
	authMiddleware *AuthMiddleware
}

// Option configures optional server dependencies
type Option func(*Server)

// WithRateLimiter limits POST /api/coach per caller
func WithRateLimiter(limiter ratelimit.Limiter) Option {
	return func(s *Server) {
		s.limiter = limiter
	}
}

// WithRegistry reports the registered dependencies on /ready
func WithRegistry(registry *services.Registry) Option {
	return func(s *Server) {
		s.registry = registry
	}
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	repo storage.Repository,
	coachService *coach.Service,
	verifier TokenVerifier,
	quickActions *prompts.Loader,
	opts ...Option,
) *Server {
	s := &Server{
		config:         cfg,
		repo:           repo,
		coach:          coachService,
		quickActions:   quickActions,
		registry:       services.NewRegistry(),
		authMiddleware: NewAuthMiddleware(verifier),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// Coach endpoint keeps its own {reply}/{error} contract. Identify never
	// rejects; the coach service decides between 500 and 401.
	r.With(s.authMiddleware.Identify, s.rateLimitMiddleware).Post("/api/coach", s.handleCoach)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware.Identify)
		r.Use(s.authMiddleware.RequireCaller)

		r.Get("/stats", s.handleStats)
		r.Get("/coach/quick-actions", s.handleListQuickActions)

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", s.handleListSkills)
			r.Post("/", s.handleCreateSkill)
			r.Get("/progress", s.handleListSkillProgress)
			r.Get("/recommendations", s.handleListRecommendations)
			r.Patch("/recommendations/{id}/complete", s.handleCompleteRecommendation)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSkill)
				r.Put("/", s.handleUpdateSkill)
				r.Delete("/", s.handleDeleteSkill)
				r.Post("/practice", s.handleLogPractice)
				r.Post("/recommendations", s.handleGenerateRecommendations)
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", s.handleListJobs)
			r.Post("/", s.handleCreateJob)
			r.Get("/board", s.handleBoard)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetJob)
				r.Put("/", s.handleUpdateJob)
				r.Delete("/", s.handleDeleteJob)
				r.Patch("/status", s.handleMoveJob)
			})
		})

		r.Route("/interviews", func(r chi.Router) {
			r.Get("/", s.handleListInterviews)
			r.Post("/", s.handleCreateInterview)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetInterview)
				r.Put("/", s.handleUpdateInterview)
				r.Delete("/", s.handleDeleteInterview)
			})
		})

		r.Route("/learning", func(r chi.Router) {
			r.Get("/modules", s.handleListLearningModules)
			r.Post("/modules", s.handleCreateLearningModule)
			r.Delete("/modules/{id}", s.handleDeleteLearningModule)
			r.Post("/modules/{id}/items", s.handleCreateLearningItem)
			r.Patch("/items/{id}/toggle", s.handleToggleLearningItem)
			r.Delete("/items/{id}", s.handleDeleteLearningItem)
		})

		r.Route("/career", func(r chi.Router) {
			r.Get("/paths", s.handleListCareerPaths)
			r.Post("/paths", s.handleCreateCareerPath)
			r.Delete("/paths/{id}", s.handleDeleteCareerPath)
			r.Get("/paths/{id}/milestones", s.handleListMilestones)
			r.Post("/paths/{id}/milestones", s.handleCreateMilestone)
			r.Patch("/milestones/{id}/toggle", s.handleToggleMilestone)
			r.Delete("/milestones/{id}", s.handleDeleteMilestone)
		})

		r.Get("/resources", s.handleListResources)
		r.Route("/library", func(r chi.Router) {
			r.Get("/", s.handleListLibrary)
			r.Post("/", s.handleSaveResource)
			r.Delete("/{id}", s.handleDeleteSavedResource)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
