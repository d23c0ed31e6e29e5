// internal/httpserver/metrics.go
//
// Prometheus counters, exported on /metrics.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSoloGames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "numble_solo_games_created_total",
		Help: "Solo games created.",
	})

	metricSessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "numble_sessions_created_total",
		Help: "Multiplayer sessions created.",
	})

	metricSessionsJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "numble_sessions_joined_total",
		Help: "Multiplayer sessions joined by an opponent.",
	})

	// metricGuesses counts accepted guesses by mode (solo/multiplayer) and
	// the game state after the guess.
	metricGuesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "numble_guesses_total",
		Help: "Accepted guesses by mode and resulting state.",
	}, []string{"mode", "state"})
)
