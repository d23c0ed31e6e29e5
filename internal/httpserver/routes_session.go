// internal/httpserver/routes_session.go
//
// HTTP routes for two-player sessions.
// Exposes five endpoints under /session:
//   - POST /session/create      → create a session for today's puzzle
//   - POST /session/join        → join as the opponent
//   - POST /session/guess       → submit a guess (turn-enforced)
//   - GET  /session/{id}        → read-only snapshot
//   - GET  /session/{id}/watch  → websocket push on state change (ws.go)
//
// The handlers are a thin mapping from the session.Manager operations onto
// status codes; all game rules live in the manager.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/gauravc/numble/internal/game"
	"github.com/gauravc/numble/internal/session"
)

// mountSessions registers all /session routes.
func (s *Server) mountSessions() {
	s.r.Route("/session", func(r chi.Router) {
		r.Post("/create", s.handleSessionCreate)
		r.Post("/join", s.handleSessionJoin)
		r.Post("/guess", s.handleSessionGuess)
		r.Get("/{id}", s.handleSessionFetch)
		r.Get("/{id}/watch", s.handleSessionWatch)
	})
}

type sessionCreateReq struct {
	PlayerID string `json:"playerId"`
}
type sessionCreateRes struct {
	SessionID string          `json:"sessionId"`
	Session   *session.Record `json:"session"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rec, err := s.sessions.Create(r.Context(), req.PlayerID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	metricSessionsCreated.Inc()
	_ = json.NewEncoder(w).Encode(sessionCreateRes{SessionID: rec.ID, Session: rec})
}

type sessionJoinReq struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
}
type sessionRes struct {
	Session *session.Record `json:"session"`
}

func (s *Server) handleSessionJoin(w http.ResponseWriter, r *http.Request) {
	var req sessionJoinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rec, err := s.sessions.Join(r.Context(), req.SessionID, req.PlayerID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	metricSessionsJoined.Inc()
	_ = json.NewEncoder(w).Encode(sessionRes{Session: rec})
}

type sessionGuessReq struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
	Guess     string `json:"guess"`
}

func (s *Server) handleSessionGuess(w http.ResponseWriter, r *http.Request) {
	var req sessionGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	rec, err := s.sessions.SubmitGuess(r.Context(), req.SessionID, req.PlayerID, req.Guess)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	metricGuesses.WithLabelValues("multiplayer", string(rec.GameStatus)).Inc()
	_ = json.NewEncoder(w).Encode(sessionRes{Session: rec})
}

func (s *Server) handleSessionFetch(w http.ResponseWriter, r *http.Request) {
	rec, err := s.sessions.Fetch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sessionRes{Session: rec})
}

// writeSessionError maps the manager's error taxonomy onto status codes:
// input errors 400, authorization 400/403, not-found 404, write races 409,
// storage failures 503. The error string is the client-facing reason.
func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrNotParticipant):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, session.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrMissingPlayer),
		errors.Is(err, session.ErrSelfJoin),
		errors.Is(err, session.ErrOpponentTaken),
		errors.Is(err, session.ErrNotYourTurn),
		errors.Is(err, session.ErrGameOver):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrEmptyGuess),
		errors.Is(err, game.ErrBadFormat),
		errors.Is(err, game.ErrOutOfRange),
		errors.Is(err, game.ErrNotWholeDivision),
		errors.Is(err, game.ErrIncorrectEquation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("session storage")
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	}
}
