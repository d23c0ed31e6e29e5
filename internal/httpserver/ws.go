// internal/httpserver/ws.go
//
// Websocket watch endpoint for multiplayer sessions.
// GET /session/{id}/watch upgrades the connection and pushes the session
// record whenever its version changes, so a waiting player sees the
// opponent's move without hammering the fetch endpoint. The underlying
// store is still polled server-side; the socket just moves the polling off
// the client.
//
// The stream ends when the session reaches a terminal state, expires, or
// the client goes away.

package httpserver

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/gauravc/numble/internal/session"
)

const watchInterval = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := os.Getenv("CLIENT_ORIGIN")
		if origin == "" {
			return true // dev
		}
		return r.Header.Get("Origin") == origin
	},
}

// handleSessionWatch streams session snapshots until the game ends.
func (s *Server) handleSessionWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Reject unknown sessions before upgrading.
	rec, err := s.sessions.Fetch(r.Context(), id)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// required to notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(sessionRes{Session: rec}); err != nil {
		return
	}
	lastVersion := rec.Version

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// The request context is bounded by the timeout middleware and
			// outlived by the hijacked connection; poll with a fresh one.
			ctx, cancel := context.WithTimeout(context.Background(), watchInterval)
			cur, err := s.sessions.Fetch(ctx, id)
			cancel()
			if err != nil {
				// Expired or storage trouble; either way the watch is over.
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session gone"),
					time.Now().Add(time.Second))
				return
			}
			if cur.Version == lastVersion {
				continue
			}
			lastVersion = cur.Version
			if err := conn.WriteJSON(sessionRes{Session: cur}); err != nil {
				return
			}
			if cur.GameStatus != session.StatusInProgress {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
					time.Now().Add(time.Second))
				return
			}
		}
	}
}
