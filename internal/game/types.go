// internal/game/types.go
//
// Core type definitions for the Numble game engine.
// Defines:
//   - Mark: per-character result of a guess (exact/present/absent).
//   - Game: state for a single in-progress or finished solo game.
//   - Statistics: aggregate per-player counters.

package game

// Mark represents the evaluation result for a single character in a guess.
// Possible values:
//   - "exact":   character is correct and in the correct position.
//   - "present": character exists in the answer but in a different position.
//   - "absent":  character does not exist in the remaining answer characters.
type Mark string

const (
	MarkExact   Mark = "exact"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// MaxGuesses is the solo guess limit per day.
const MaxGuesses = 6

// Game holds the state of a single solo game, bound to one day's puzzle.
type Game struct {
	ID           string   // Unique game identifier.
	Puzzle       string   // The target equation, canonical "N OP N = R" form.
	PuzzleNumber int      // Day identity; mismatch with today means stale state.
	Guesses      []string // Accepted guesses so far, at most MaxGuesses.
	HardMode     bool     // Revealed hints must be reused in later guesses.
	Finished     bool     // True once the game is over (won or lost).
	Won          bool     // True if the game finished with a win.
}

// Statistics are the aggregate counters shown in the stats panel.
// Distribution buckets are win-by-attempt counts for attempts 1..6.
type Statistics struct {
	GamesPlayed   int    `json:"gamesPlayed"`
	GamesWon      int    `json:"gamesWon"`
	CurrentStreak int    `json:"currentStreak"`
	MaxStreak     int    `json:"maxStreak"`
	Distribution  [6]int `json:"guessDistribution"`
}

// Update folds one completed game into the counters. The caller is
// responsible for invoking it exactly once per finished game.
func (s *Statistics) Update(won bool, attempts int) {
	s.GamesPlayed++
	if !won {
		s.CurrentStreak = 0
		return
	}
	s.GamesWon++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	if attempts >= 1 && attempts <= MaxGuesses {
		s.Distribution[attempts-1]++
	}
}
