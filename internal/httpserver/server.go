// internal/httpserver/server.go
//
// HTTP server wiring for the word-pair game.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, JSON, CORS).
//   - Diagnostics: "/", "/health".
//   - Game commands: POST /session/start, POST /session/select.
//   - Read-only views: GET /catalog, GET /state, GET /history, GET /history/recent.
//   - Event stream: GET /ws (WebSocket, outside the timeout group).
//
// Notes:
//   - Rejected selections are not HTTP errors; they answer 200 with rejected=true.
//   - The hidden pair is never serialized.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/psychic/internal/game"
	"github.com/robalobadob/psychic/internal/history"
)

// Game is the presenter surface used by the handlers.
type Game interface {
	Catalog() game.CatalogReady
	Snapshot() game.Snapshot
	StartSession() game.SessionReset
	Submit(word string) (game.Selection, *game.RoundEvaluated)
}

// Board serves finished sessions. *history.Store satisfies it.
type Board interface {
	Best(ctx context.Context, limit int) ([]history.Result, error)
	Recent(ctx context.Context, limit int) ([]history.Result, error)
}

// Deps bundles what the server needs. Board and Events may be nil.
type Deps struct {
	Game         Game
	Board        Board
	Events       http.Handler
	ClientOrigin string
	HistoryLimit int
}

// Server bundles the router and its dependencies.
type Server struct {
	r    *chi.Mux
	deps Deps
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	if d.HistoryLimit <= 0 {
		d.HistoryLimit = history.DefaultLimit
	}
	s := &Server{r: chi.NewRouter(), deps: d}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(cors(d.ClientOrigin))

	if d.Events != nil {
		s.r.Handle("/ws", d.Events)
	}

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"psychic-go","endpoints":["/health","/catalog","/state","POST /session/start","POST /session/select","/history","/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Get("/catalog", s.handleCatalog)
		r.Get("/state", s.handleState)
		r.Post("/session/start", s.handleStart)
		r.Post("/session/select", s.handleSelect)
		r.Get("/history", s.handleBoard(Board.Best))
		r.Get("/history/recent", s.handleBoard(Board.Recent))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin != "" {
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.deps.Game.Catalog())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.deps.Game.Snapshot())
}

type startRes struct {
	SessionID string     `json:"sessionId"`
	Phase     game.Phase `json:"phase"`
	Score     int        `json:"score"`
	Remaining int        `json:"remaining"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	ev := s.deps.Game.StartSession()
	_ = json.NewEncoder(w).Encode(startRes{
		SessionID: ev.SessionID,
		Phase:     ev.Phase,
		Score:     ev.Score,
		Remaining: ev.Remaining,
	})
}

type selectReq struct {
	Word string `json:"word"`
}

type selectRes struct {
	Count     int                  `json:"count"`
	Rejected  bool                 `json:"rejected"`
	Evaluated *game.RoundEvaluated `json:"evaluated"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sel, ev := s.deps.Game.Submit(req.Word)
	_ = json.NewEncoder(w).Encode(selectRes{Count: sel.Count, Rejected: sel.Rejected, Evaluated: ev})
}

// ------------------------------ HISTORY ------------------------------------

type boardRes struct {
	Sessions []history.Result `json:"sessions"`
}

func (s *Server) handleBoard(query func(Board, context.Context, int) ([]history.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Board == nil {
			http.Error(w, `{"error":"history_disabled"}`, http.StatusNotFound)
			return
		}
		limit := s.deps.HistoryLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
				return
			}
			if n < limit {
				limit = n
			}
		}
		rows, err := query(s.deps.Board, r.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("history query")
			http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(boardRes{Sessions: rows})
	}
}
