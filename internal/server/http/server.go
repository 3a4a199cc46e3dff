// Package httpserver exposes the game manager over a JSON API. Seat
// tokens issued at game creation gate every mutating endpoint.
package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"janggi/internal/server/game"
)

// Config carries the knobs the binary wires in from its environment.
type Config struct {
	JWTSecret   string
	TokenTTL    time.Duration
	EngineDepth int
}

const (
	defaultTokenTTL    = 7 * 24 * time.Hour
	defaultEngineDepth = 4

	// Request depth is clamped so one client cannot pin the CPU.
	maxEngineDepth = 8
)

type Server struct {
	r      *chi.Mux
	mgr    *game.Manager
	secret []byte
	ttl    time.Duration
	depth  int
}

// New builds the router. The manager must outlive the server.
func New(mgr *game.Manager, cfg Config) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		mgr:    mgr,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		depth:  cfg.EngineDepth,
	}
	if s.ttl <= 0 {
		s.ttl = defaultTokenTTL
	}
	if s.depth <= 0 {
		s.depth = defaultEngineDepth
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.handleState)
			r.Delete("/", s.handleDelete)
			r.Get("/moves", s.handleMoves)
			r.Post("/moves", s.handlePlay)
			r.Post("/engine-move", s.handleEngineMove)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Router exposes the mux for the binary and for tests.
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets the default Content-Type; every endpoint
// answers JSON.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one line per request with the fields that
// matter when replaying an incident.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}
