package api

import (
	"log"
	"net/http"

	"courtside/internal/match"

	"github.com/go-chi/chi/v5"
)

// Server combines the HTTP router with the WebSocket hub for live
// scoreboard updates.
type Server struct {
	engine      *match.Engine
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
	sessions    *SessionManager
}

// NewServer creates the API server. Background workers do not start
// until Start is called, so tests can construct it freely.
func NewServer(engine *match.Engine, sessions *SessionManager) *Server {
	s := &Server{
		engine:   engine,
		wsHub:    NewWebSocketHub(),
		sessions: sessions,
	}

	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)
	s.router = NewRouter(RouterConfig{
		Engine:      engine,
		RateLimiter: s.rateLimiter,
		Sessions:    sessions,
	})

	// The WebSocket route needs the hub instance, so it lives outside
	// the pure router factory.
	s.router.Get("/ws", s.handleWS)

	return s
}

// Start launches the hub workers, wires notice broadcasting and serves
// HTTP. It blocks like http.ListenAndServe.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()
	s.wsHub.StartBroadcastLoop(s.engine)

	// Engine notices go straight to every connected display.
	s.engine.SetNoticeFunc(func(n match.Notice) {
		RecordNotice(string(n.Kind))
		s.wsHub.Broadcast("match:notice", n)
	})

	log.Printf("🌐 API server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for httptest-based tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop shuts down background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
