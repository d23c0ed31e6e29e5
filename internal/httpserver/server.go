// internal/httpserver/server.go
//
// HTTP wiring for the Numble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Solo endpoints: POST /game/new, POST /game/guess, GET /stats,
//     GET /leaderboard.
//   - Multiplayer endpoints: mounted under /session (see routes_session.go).
//   - Anonymous player identity cookie for solo play.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Solo games are held in memory per player per day; finished games are
//     recorded through the Results store, which owns idempotence.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/gauravc/numble/internal/game"
	"github.com/gauravc/numble/internal/puzzle"
	"github.com/gauravc/numble/internal/results"
	"github.com/gauravc/numble/internal/session"
)

// Results is the slice of the results store the server uses.
// *results.Store satisfies it; tests use a fake.
type Results interface {
	Record(ctx context.Context, r results.Result) error
	Stats(ctx context.Context, playerID string) (game.Statistics, error)
	Leaderboard(ctx context.Context, puzzleNumber, limit int) ([]results.LBRow, error)
}

// soloGame pairs a game with the player cookie that created it, so guesses
// against someone else's game ID can be refused.
type soloGame struct {
	owner string
	g     *game.Game
}

// Server bundles the router, the session manager, the results store, and
// the in-memory solo game registry.
type Server struct {
	r        *chi.Mux
	sessions *session.Manager
	results  Results
	now      func() time.Time

	mu   sync.Mutex
	solo map[string]*soloGame // keyed by playerID|puzzleNumber
	byID map[string]*soloGame // same games keyed by game ID
}

// New constructs a Server, installs middleware, and registers routes.
func New(mgr *session.Manager, res Results) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		sessions: mgr,
		results:  res,
		now:      time.Now,
		solo:     make(map[string]*soloGame),
		byID:     make(map[string]*soloGame),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"numble","endpoints":["/health","POST /game/new","POST /game/guess","/stats","/leaderboard","/session/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Solo play
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/stats", s.handleStats)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// Multiplayer sessions
	s.mountSessions()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
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

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:3000.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SOLO ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	HardMode bool   `json:"hardMode"`
	Puzzle   string `json:"puzzle"` // optional fixed puzzle (testing)
}
type newGameRes struct {
	GameID       string   `json:"gameId"`
	PuzzleNumber int      `json:"puzzleNumber"`
	Guesses      []string `json:"guesses"`
	State        string   `json:"state"`
}

// handleNewGame creates or reuses the player's game for today's puzzle.
// A stored game from a previous day is discarded, never merged.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	pid := s.ensurePlayerID(w, r)
	now := s.now()
	key := pid + "|" + strconv.Itoa(puzzle.Number(now))

	s.mu.Lock()
	s.pruneStale(now)
	e, ok := s.solo[key]
	if !ok {
		e = &soloGame{owner: pid, g: game.New(now, req.Puzzle)}
		e.g.HardMode = req.HardMode
		s.solo[key] = e
		s.byID[e.g.ID] = e
		metricSoloGames.Inc()
	}
	g := e.g
	s.mu.Unlock()

	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:       g.ID,
		PuzzleNumber: g.PuzzleNumber,
		Guesses:      g.Guesses,
		State:        g.State(),
	})
}

// pruneStale drops games from previous days out of both indexes, so the
// registry stays bounded by the day's active players. Caller holds s.mu.
func (s *Server) pruneStale(now time.Time) {
	for key, e := range s.solo {
		if e.g.Stale(now) {
			delete(s.solo, key)
			delete(s.byID, e.g.ID)
		}
	}
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Feedback  []game.Mark          `json:"feedback"`
	Keyboard  map[string]game.Mark `json:"keyboard"`
	State     string               `json:"state"` // "playing" | "won" | "lost"
	ShareText string               `json:"shareText,omitempty"`
}

// handleGuess applies a guess to the player's solo game and, on the
// playing→terminal transition, records the result exactly once.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	pid := s.ensurePlayerID(w, r)

	s.mu.Lock()
	e, ok := s.byID[req.GameID]
	s.mu.Unlock()
	// A game ID held by a different player reads the same as a missing one.
	if !ok || e.owner != pid {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	g := e.g

	s.mu.Lock()
	marks, state, finishedNow, err := g.ApplyGuess(req.Guess)
	var res guessRes
	var result results.Result
	if err == nil {
		res = guessRes{
			Feedback: marks,
			Keyboard: game.KeyboardFeedback(g.Guesses, g.Puzzle),
			State:    state,
		}
		if finishedNow {
			res.ShareText = g.ShareText()
			result = results.Result{
				PlayerID:     pid,
				PuzzleNumber: g.PuzzleNumber,
				Won:          g.Won,
				Guesses:      len(g.Guesses),
				CompletedAt:  s.now(),
			}
		}
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metricGuesses.WithLabelValues("solo", state).Inc()

	if finishedNow {
		// Best effort; the unique result row makes replays harmless.
		if err := s.results.Record(r.Context(), result); err != nil {
			log.Warn().Err(err).Str("player", pid).Msg("record result")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleStats returns the player's aggregate counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	pid := s.ensurePlayerID(w, r)
	st, err := s.results.Stats(r.Context(), pid)
	if err != nil {
		log.Error().Err(err).Msg("load stats")
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// lbRes is returned by /leaderboard.
type lbRes struct {
	PuzzleNumber int             `json:"puzzleNumber"`
	Top          []results.LBRow `json:"top"`
}

// handleLeaderboard returns today's winners, or a given puzzle number's.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	num := puzzle.Number(s.now())
	if v := r.URL.Query().Get("puzzle"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			num = n
		}
	}
	rows, err := s.results.Leaderboard(r.Context(), num, 20)
	if err != nil {
		log.Error().Err(err).Msg("load leaderboard")
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{PuzzleNumber: num, Top: rows})
}

// ---------------------------- player identity ------------------------------

const playerCookieName = "numble_player"

// ensurePlayerID returns an existing player cookie or sets a new one.
// Solo progress and statistics hang off this identifier.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("NODE_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("NODE_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// writeError emits a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
