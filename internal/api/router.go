package api

import (
	"net/http"

	"courtside/internal/match"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineInterface is the slice of the match engine the API layer uses.
// It enables mocking in tests without running the tick loop.
type EngineInterface interface {
	View() match.StateView
	Score() match.ScoreSummary
	Suffered() match.SufferedSummary
	Timeline() []match.TimelineEvent
	ExportRecords() ([]match.EntityRecord, []match.LedgerEntry, []match.LedgerEntry)

	StartClock() error
	PauseClock()
	ToggleField(id string) error
	ResolveForcedSubstitution(id string) error
	GiveYellow(id string) error
	GiveTwoMinutes(id string) (*match.ForcedSubstitutionRequest, error)
	GiveRed(id string) (*match.ForcedSubstitutionRequest, error)
	RegisterGoal(id, shotType string, zone *int, conceded bool) error
	RegisterShot(id, outcome, shotType string, zone *int, conceded bool) error
	AddTechnicalFault(id string) error
	AddAchievement(id, label string) error
	SetPassive(v bool)
	Undo() error
}

// RouterConfig carries the dependencies for constructing the router.
//
// Example usage in tests:
//
//	router := api.NewRouter(api.RouterConfig{
//	    Engine: engine,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000,
//	        Burst:             1000,
//	    },
//	})
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the match engine (required).
	Engine EngineInterface

	// RateLimiter is an optional pre-configured rate limiter. If nil,
	// one is created from RateLimitConfig (or the defaults).
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default local-only origins.
	CORSOrigins []string

	// Sessions enables scorekeeper authentication on mutating routes
	// when non-nil.
	Sessions *SessionManager

	// DisableLogging disables the request logger middleware.
	DisableLogging bool
}

type routerHandlers struct {
	engine EngineInterface
}

// NewRouter constructs the HTTP router with all middleware and routes.
// It is pure: no goroutines, no listeners, safe for httptest.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting before CORS to reject early.
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{engine: cfg.Engine}

	r.Route("/api", func(r chi.Router) {
		// Read-only views
		r.Get("/state", h.handleGetState)
		r.Get("/score", h.handleGetScore)
		r.Get("/suffered", h.handleGetSuffered)
		r.Get("/timeline", h.handleGetTimeline)

		// Exports
		r.Get("/export", h.handleExportJSON)
		r.Get("/export/entities.csv", h.handleExportEntitiesCSV)
		r.Get("/export/ledger.csv", h.handleExportLedgerCSV)

		// Session login is reachable without a session.
		if cfg.Sessions != nil {
			r.Post("/login", cfg.Sessions.HandleLogin)
			r.Post("/logout", cfg.Sessions.HandleLogout)
		}

		// Mutating routes, behind auth when sessions are enabled.
		r.Group(func(r chi.Router) {
			if cfg.Sessions != nil {
				r.Use(cfg.Sessions.Middleware)
			}

			r.Post("/clock/start", h.handleClockStart)
			r.Post("/clock/pause", h.handleClockPause)

			r.Post("/field/toggle", h.handleFieldToggle)
			r.Post("/field/forced-sub", h.handleForcedSubResolve)

			r.Post("/sanction/yellow", h.handleYellow)
			r.Post("/sanction/two-minutes", h.handleTwoMinutes)
			r.Post("/sanction/red", h.handleRed)

			r.Post("/goal", h.handleGoal)
			r.Post("/shot", h.handleShot)
			r.Post("/fault", h.handleTechFault)
			r.Post("/achievement", h.handleAchievement)
			r.Post("/passive", h.handlePassive)

			r.Post("/undo", h.handleUndo)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/state", http.StatusFound)
	})

	return r
}
