// internal/session/session.go
//
// Types and storage contract for two-player sessions.
// Defines:
//   - Record: the persisted session state, including an optimistic version.
//   - Guess: one per-player guess entry.
//   - Store: the key-value persistence interface with expiry, injected into
//     the Manager so tests can use a fake and deployments can swap backends.

package session

import (
	"context"
	"errors"
	"time"
)

// Turn identifies whose move it is while a session is in progress.
type Turn string

const (
	TurnCreator  Turn = "creator"
	TurnOpponent Turn = "opponent"
)

// Status is the session game state. Transitions are monotonic:
// in_progress → won or lost, never back.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// MaxGuesses is the total guess cap across both players (6 each).
const MaxGuesses = 12

// Guess is one accepted guess, tagged with its submitter.
type Guess struct {
	PlayerID  string    `json:"playerId"`
	Guess     string    `json:"guess"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is the persisted session state. Version backs the optimistic
// concurrency check: Store.Update only succeeds when the stored version
// still matches, so two racing writers cannot both win.
type Record struct {
	ID           string    `json:"id"`
	PuzzleNumber int       `json:"puzzleNumber"`
	Puzzle       string    `json:"puzzle"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatorID    string    `json:"creatorId"`
	OpponentID   string    `json:"opponentId,omitempty"`
	CurrentTurn  Turn      `json:"currentTurn"`
	Guesses      []Guess   `json:"guesses"`
	GameStatus   Status    `json:"gameStatus"`
	WinnerID     string    `json:"winnerId,omitempty"`
	Version      int64     `json:"version"`
}

// Clone returns a deep copy so callers can mutate without aliasing the
// stored record.
func (r *Record) Clone() *Record {
	cp := *r
	cp.Guesses = append([]Guess(nil), r.Guesses...)
	return &cp
}

// Role returns the player's role in the session, or "" for strangers.
func (r *Record) Role(playerID string) Turn {
	switch playerID {
	case r.CreatorID:
		return TurnCreator
	case r.OpponentID:
		if playerID != "" {
			return TurnOpponent
		}
	}
	return ""
}

// Store errors. Expired records surface as ErrNotFound: an expired session
// is indistinguishable from one that never existed.
var (
	ErrNotFound = errors.New("session not found")
	ErrConflict = errors.New("session was modified concurrently")
)

// Store defines session persistence with expiry.
// Implementations may be backed by memory (tests, dev) or SQLite.
type Store interface {
	// Create persists a new record. The record is unrecoverable after
	// expiresAt; the storage layer owns expiry, not the game logic.
	Create(ctx context.Context, rec *Record, expiresAt time.Time) error

	// Get retrieves a live record by ID. Returns ErrNotFound for unknown
	// or expired sessions.
	Get(ctx context.Context, id string) (*Record, error)

	// Update persists rec if the stored version equals rec.Version, then
	// increments it. Returns ErrConflict on a lost race, ErrNotFound if
	// the record disappeared.
	Update(ctx context.Context, rec *Record) error
}
