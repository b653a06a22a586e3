package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/musclememo/internal/ingest/alpha"
	"github.com/claude/musclememo/internal/metrics"
	"github.com/claude/musclememo/internal/workout"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *workout.Tracker
	alpha   *alpha.Provider
	metrics *metrics.Metrics
	limits  *workout.SetLimits
	now     func() time.Time
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. A nil limits accepts
// any set value; a nil metrics leaves /metrics unmounted.
func New(tracker *workout.Tracker, alphaProvider *alpha.Provider, m *metrics.Metrics, limits *workout.SetLimits, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		tracker: tracker,
		alpha:   alphaProvider,
		metrics: m,
		limits:  limits,
		now:     time.Now,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Get("/exercises", s.handleListExercises)
		r.Post("/exercises", s.handleAddExercise)

		r.Route("/workout", func(r chi.Router) {
			r.Get("/", s.handleGetWorkout)
			r.Post("/start", s.handleStartWorkout)
			r.Post("/cancel", s.handleCancelWorkout)
			r.Post("/finish", s.handleFinishWorkout)

			r.Post("/exercises", s.handleAddInstance)
			r.Delete("/exercises/{instanceID}", s.handleRemoveInstance)
			r.Post("/exercises/{instanceID}/sets", s.handleAddSet)
			r.Patch("/exercises/{instanceID}/sets/{setID}", s.handleUpdateSet)
			r.Post("/exercises/{instanceID}/sets/{setID}/toggle", s.handleToggleSet)
			r.Delete("/exercises/{instanceID}/sets/{setID}", s.handleRemoveSet)
		})

		r.Get("/history", s.handleHistory)
		r.Get("/history/{id}", s.handleGetSession)
		r.Delete("/history/{id}", s.handleDeleteSession)

		r.Get("/calendar", s.handleCalendar)
		r.Get("/calendar/{date}", s.handleDay)
		r.Get("/stats", s.handleStats)
		r.Get("/records", s.handleRecords)

		r.Post("/import/alpha", s.handleAlphaImport)
	})
}

// MountMCP serves an MCP transport at /mcp behind the API key.
func (s *Server) MountMCP(h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Handle("/mcp", h)
}
