// internal/game/solo.go
//
// Solo game controller: one game per player per day.
// Responsibilities:
//   - Create games bound to a day's puzzle.
//   - Validate and apply guesses (format, range, arithmetic, hard mode).
//   - Track state transitions: playing → won/lost.
//
// Day rollover is the caller's concern: a stored game whose PuzzleNumber no
// longer matches today's is stale and must be replaced, never merged.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/gauravc/numble/internal/puzzle"
)

// ErrGameFinished rejects guesses against a terminal game.
var ErrGameFinished = errors.New("game finished")

// New constructs a game for the given date's puzzle.
// If withPuzzle is non-empty it overrides the daily puzzle (testing).
func New(t time.Time, withPuzzle string) *Game {
	p := withPuzzle
	if p == "" {
		p = puzzle.ForDate(t)
	}
	return &Game{
		ID:           randomID(),
		Puzzle:       p,
		PuzzleNumber: puzzle.Number(t),
		Guesses:      []string{},
	}
}

// Stale reports whether the stored game belongs to a previous day.
func (g *Game) Stale(now time.Time) bool {
	return g.PuzzleNumber != puzzle.Number(now)
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the per-character marks, the new state string
// ("playing"/"won"/"lost"), and the terminal flag: true exactly when this
// guess moved the game from playing to won or lost (the statistics trigger).
//
// A rejected guess never consumes a turn.
func (g *Game) ApplyGuess(guess string) ([]Mark, string, bool, error) {
	if g.Finished {
		return nil, g.State(), false, ErrGameFinished
	}
	if err := Validate(guess); err != nil {
		return nil, g.State(), false, err
	}
	if g.HardMode {
		if err := CheckHardMode(g.Guesses, guess, g.Puzzle); err != nil {
			return nil, g.State(), false, err
		}
	}

	marks := Score(guess, g.Puzzle)
	g.Guesses = append(g.Guesses, guess)

	if guess == g.Puzzle {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= MaxGuesses {
		g.Finished = true
	}
	return marks, g.State(), g.Finished, nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// ShareText renders the emoji grid for a finished game.
func (g *Game) ShareText() string {
	attempts := "X"
	if g.Won {
		attempts = strconv.Itoa(len(g.Guesses))
	}
	out := "Numble " + strconv.Itoa(g.PuzzleNumber) + " " + attempts + "/6\n\n"
	for _, guess := range g.Guesses {
		for _, m := range Score(guess, g.Puzzle) {
			switch m {
			case MarkExact:
				out += "🟩"
			case MarkPresent:
				out += "🟨"
			default:
				out += "⬜"
			}
		}
		out += "\n"
	}
	return out[:len(out)-1]
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
