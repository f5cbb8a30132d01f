// Package server exposes the brief wizard and submission API over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freelancehub/brief-service/internal/apperr"
	"github.com/freelancehub/brief-service/internal/brief"
	"github.com/freelancehub/brief-service/internal/health"
	"github.com/freelancehub/brief-service/internal/jobs"
	"github.com/freelancehub/brief-service/internal/pricing"
	"github.com/freelancehub/brief-service/internal/ratelimit"
	"github.com/freelancehub/brief-service/internal/repository"
	"github.com/freelancehub/brief-service/internal/wizard"
	"github.com/freelancehub/brief-service/pkg/config"
	"github.com/freelancehub/brief-service/pkg/logger"
)

// Deps carries the collaborators the HTTP layer orchestrates.
type Deps struct {
	Log         *slog.Logger
	Wizard      *wizard.Manager
	Validator   *brief.Validator
	Submissions repository.SubmissionRepository
	Queue       jobs.Queue
	Limiter     ratelimit.Limiter
	Runtime     *config.Runtime
	Formatter   *pricing.Formatter
	Checker     *health.Checker
	Errors      *apperr.Handler
}

// Server handles the public API of the brief service.
type Server struct {
	log         *slog.Logger
	wizard      *wizard.Manager
	validator   *brief.Validator
	submissions repository.SubmissionRepository
	queue       jobs.Queue
	limiter     ratelimit.Limiter
	runtime     *config.Runtime
	formatter   *pricing.Formatter
	checker     *health.Checker
	errors      *apperr.Handler
}

// New constructs the Server from its dependencies.
func New(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	return &Server{
		log:         log,
		wizard:      deps.Wizard,
		validator:   deps.Validator,
		submissions: deps.Submissions,
		queue:       deps.Queue,
		limiter:     deps.Limiter,
		runtime:     deps.Runtime,
		formatter:   deps.Formatter,
		checker:     deps.Checker,
		errors:      deps.Errors,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(logger.Middleware)
	r.Use(newStructuredLogger(s.log))
	r.Use(metricsMiddleware)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/steps", s.handleSteps)
		r.Post("/estimate", s.handleEstimate)

		r.Route("/wizard/{session}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Patch("/values", s.handlePatchValues)
			r.Post("/next", s.handleNext)
			r.Post("/back", s.handleBack)
			r.Delete("/", s.handleReset)
		})

		r.With(rateLimitMiddleware(s.limiter, s.runtime, s.log)).
			Post("/briefs", s.handleSubmit)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	results := s.checker.Check(r.Context())

	status := http.StatusOK
	if !health.Healthy(results) {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, results)
}
