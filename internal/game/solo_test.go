package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravc/numble/internal/puzzle"
)

var day = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestNewBoundToDay(t *testing.T) {
	g := New(day, "")
	assert.Equal(t, puzzle.Number(day), g.PuzzleNumber)
	assert.Equal(t, puzzle.ForDate(day), g.Puzzle)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "playing", g.State())
}

func TestApplyGuessWin(t *testing.T) {
	g := New(day, "12 + 34 = 46")

	marks, state, terminal, err := g.ApplyGuess("12 + 34 = 46")
	require.NoError(t, err)
	assert.True(t, AllExact(marks))
	assert.Equal(t, "won", state)
	assert.True(t, terminal)
	assert.True(t, g.Won)
}

func TestApplyGuessLossAtSix(t *testing.T) {
	g := New(day, "12 + 34 = 46")

	wrong := []string{
		"1 + 2 = 3", "2 + 2 = 4", "3 + 3 = 6",
		"4 + 4 = 8", "5 + 5 = 10", "6 + 6 = 12",
	}
	for i, guess := range wrong {
		_, state, terminal, err := g.ApplyGuess(guess)
		require.NoError(t, err)
		if i < 5 {
			assert.Equal(t, "playing", state)
			assert.False(t, terminal)
		} else {
			assert.Equal(t, "lost", state)
			assert.True(t, terminal, "sixth miss is the terminal transition")
		}
	}

	// Terminal games accept nothing further.
	_, _, terminal, err := g.ApplyGuess("12 + 34 = 46")
	assert.ErrorIs(t, err, ErrGameFinished)
	assert.False(t, terminal)
}

func TestApplyGuessRejectionConsumesNoTurn(t *testing.T) {
	g := New(day, "12 + 34 = 46")

	_, _, _, err := g.ApplyGuess("not an equation")
	assert.ErrorIs(t, err, ErrBadFormat)
	assert.Empty(t, g.Guesses)

	_, _, _, err = g.ApplyGuess("10 / 3 = 3")
	assert.ErrorIs(t, err, ErrNotWholeDivision)
	assert.Empty(t, g.Guesses)
}

func TestApplyGuessHardMode(t *testing.T) {
	g := New(day, "12 + 34 = 46")
	g.HardMode = true

	_, _, _, err := g.ApplyGuess("10 + 20 = 30")
	require.NoError(t, err)

	// "90 - 50 = 40" drops the exact '1' at position 0.
	_, _, _, err = g.ApplyGuess("90 - 50 = 40")
	var hm *HardModeError
	require.ErrorAs(t, err, &hm)
	assert.Len(t, g.Guesses, 1, "hard-mode rejection must not consume a turn")
}

func TestStale(t *testing.T) {
	g := New(day, "")
	assert.False(t, g.Stale(day))
	assert.False(t, g.Stale(day.Add(2*time.Hour)))
	assert.True(t, g.Stale(day.AddDate(0, 0, 1)))
}

func TestShareText(t *testing.T) {
	g := New(day, "12 + 34 = 46")
	_, _, _, err := g.ApplyGuess("10 + 20 = 30")
	require.NoError(t, err)
	_, _, _, err = g.ApplyGuess("12 + 34 = 46")
	require.NoError(t, err)

	txt := g.ShareText()
	assert.Contains(t, txt, "Numble")
	assert.Contains(t, txt, "2/6")
	assert.Contains(t, txt, "🟩")
}

func TestStatisticsUpdate(t *testing.T) {
	var s Statistics

	s.Update(true, 3)
	s.Update(true, 3)
	s.Update(false, 6)
	s.Update(true, 1)

	assert.Equal(t, 4, s.GamesPlayed)
	assert.Equal(t, 3, s.GamesWon)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)
	assert.Equal(t, 1, s.Distribution[0])
	assert.Equal(t, 2, s.Distribution[2])
	assert.Equal(t, 0, s.Distribution[5], "losses never land in the distribution")
}
