// internal/session/manager.go
//
// Authoritative state machine for two-player sessions.
// Responsibilities:
//   - Create: fix today's puzzle, creator moves first.
//   - Join: one opponent ever, never the creator.
//   - SubmitGuess: turn-enforced, validator-gated, win at equality, loss at
//     the 12-guess cap, turn flip on every accepted guess.
//   - Fetch: read-only snapshot for client refresh.
//
// Every mutation is a read-modify-write against the injected Store; the
// optimistic version check in Store.Update rejects lost updates with
// ErrConflict so the caller can re-fetch and retry.
//
// Known quirk, kept on purpose: the turn indicator flips even on the
// terminal guess. It is observable in the record but harmless, since a
// finished game accepts no further guesses.

package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gauravc/numble/internal/game"
	"github.com/gauravc/numble/internal/puzzle"
)

// Authorization errors, distinct from guess-validation errors so the
// transport can map them separately.
var (
	ErrMissingPlayer  = errors.New("player id is required")
	ErrSelfJoin       = errors.New("cannot join your own session")
	ErrOpponentTaken  = errors.New("session already has an opponent")
	ErrNotParticipant = errors.New("player not in this session")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameOver       = errors.New("game is already over")
)

// Manager drives session state through the injected store.
type Manager struct {
	store Store
	now   func() time.Time // injectable clock for tests
}

// NewManager wires a Manager to a Store.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// expiry returns the retention deadline: the next UTC midnight. A session
// never outlives the daily puzzle it was created for.
func expiry(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

// Create allocates a session for today's puzzle with the caller as creator.
func (m *Manager) Create(ctx context.Context, creatorID string) (*Record, error) {
	if creatorID == "" {
		return nil, ErrMissingPlayer
	}
	now := m.now()
	rec := &Record{
		ID:           uuid.NewString(),
		PuzzleNumber: puzzle.Number(now),
		Puzzle:       puzzle.ForDate(now),
		CreatedAt:    now.UTC(),
		CreatorID:    creatorID,
		CurrentTurn:  TurnCreator,
		Guesses:      []Guess{},
		GameStatus:   StatusInProgress,
		Version:      1,
	}
	if err := m.store.Create(ctx, rec, expiry(now)); err != nil {
		return nil, err
	}
	log.Info().Str("session", rec.ID).Int("puzzle", rec.PuzzleNumber).Msg("session created")
	return rec, nil
}

// Join sets the opponent on a session that has none. The opponent slot is
// immutable once filled.
func (m *Manager) Join(ctx context.Context, sessionID, playerID string) (*Record, error) {
	if playerID == "" {
		return nil, ErrMissingPlayer
	}
	rec, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if rec.OpponentID != "" {
		return nil, ErrOpponentTaken
	}
	if rec.CreatorID == playerID {
		return nil, ErrSelfJoin
	}
	rec = rec.Clone()
	rec.OpponentID = playerID
	if err := m.store.Update(ctx, rec); err != nil {
		return nil, err
	}
	log.Info().Str("session", rec.ID).Msg("opponent joined")
	return rec, nil
}

// SubmitGuess applies one guess as a single read-modify-write transaction.
// Precondition order: existence, participation, game over, turn, validity.
// Preconditions never mutate state.
func (m *Manager) SubmitGuess(ctx context.Context, sessionID, playerID, guess string) (*Record, error) {
	if playerID == "" {
		return nil, ErrMissingPlayer
	}
	rec, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	role := rec.Role(playerID)
	if role == "" {
		return nil, ErrNotParticipant
	}
	if rec.GameStatus != StatusInProgress {
		return nil, ErrGameOver
	}
	if rec.CurrentTurn != role {
		return nil, ErrNotYourTurn
	}
	if err := game.Validate(guess); err != nil {
		return nil, err
	}

	rec = rec.Clone()
	rec.Guesses = append(rec.Guesses, Guess{
		PlayerID:  playerID,
		Guess:     guess,
		Timestamp: m.now().UTC(),
	})

	if guess == rec.Puzzle {
		rec.GameStatus = StatusWon
		rec.WinnerID = playerID
	} else if len(rec.Guesses) >= MaxGuesses {
		rec.GameStatus = StatusLost
	}

	// Turn flips unconditionally, terminal guess included (see file header).
	if rec.CurrentTurn == TurnCreator {
		rec.CurrentTurn = TurnOpponent
	} else {
		rec.CurrentTurn = TurnCreator
	}

	if err := m.store.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Fetch returns a read-only snapshot of the session. No side effects.
func (m *Manager) Fetch(ctx context.Context, sessionID string) (*Record, error) {
	return m.store.Get(ctx, sessionID)
}
