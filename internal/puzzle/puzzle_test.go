package puzzle_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravc/numble/internal/game"
	"github.com/gauravc/numble/internal/puzzle"
)

var canonical = regexp.MustCompile(`^\d{1,3} [+*/-] \d{1,3} = \d{1,3}$`)

func TestForDateDeterministic(t *testing.T) {
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	first := puzzle.ForDate(d)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, puzzle.ForDate(d))
	}

	// The wall-clock time of day must not matter.
	later := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, first, puzzle.ForDate(later))
}

func TestForDateGoldenVectors(t *testing.T) {
	// Fixed outputs shared with the web client's generator. Any change to
	// the LCG constants, the draw order, or the operand ranges shows up
	// here before it shows up as a client mismatch in production.
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "18 + 41 = 59"},
		{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "2 * 11 = 22"},
		{time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC), "24 + 12 = 36"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "5 * 11 = 55"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "143 / 11 = 13"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, puzzle.ForDate(c.date), "date %s", c.date.Format("2006-01-02"))
	}
}

func TestForDateWellFormed(t *testing.T) {
	// Every generated puzzle must be a canonical, mathematically valid
	// equation with all numbers in range.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 730; i++ {
		d := start.AddDate(0, 0, i)
		p := puzzle.ForDate(d)
		require.Regexp(t, canonical, p, "date %s", d.Format("2006-01-02"))
		require.NoError(t, game.Validate(p), "date %s puzzle %q", d.Format("2006-01-02"), p)
		require.LessOrEqual(t, len(p), 13, "date %s puzzle %q", d.Format("2006-01-02"), p)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 1, puzzle.Number(puzzle.Epoch))
	assert.Equal(t, 2, puzzle.Number(puzzle.Epoch.AddDate(0, 0, 1)))
	assert.Equal(t, 32, puzzle.Number(time.Date(2024, 2, 1, 12, 30, 0, 0, time.UTC)))
}

func TestNumbersNeverCollide(t *testing.T) {
	seen := make(map[int]string)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 365; i++ {
		d := start.AddDate(0, 0, i)
		n := puzzle.Number(d)
		if prev, ok := seen[n]; ok {
			t.Fatalf("puzzle number %d assigned to both %s and %s", n, prev, d)
		}
		seen[n] = fmt.Sprint(d)
	}
}
