// internal/puzzle/puzzle.go
//
// Deterministic daily puzzle generation.
// Responsibilities:
//   - Derive a reproducible equation from a calendar date (UTC).
//   - Assign each day a puzzle number counted from a fixed epoch.
//
// The seeded generator is a compatibility contract shared with the web
// client: same date ⇒ same seed ⇒ same LCG draw sequence ⇒ same puzzle.
// The LCG constants and the draw order (operator first, then operands)
// must not change.

package puzzle

import (
	"fmt"
	"time"
)

// Epoch is the date of puzzle #1.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const maxAttempts = 100

// operators in draw order. ASCII forms; the UI renders × and ÷.
var operators = []byte{'+', '-', '*', '/'}

// lcg is a linear congruential generator with the client's constants.
// Draws are in [0,1).
type lcg struct {
	seed int64
}

func (r *lcg) next() float64 {
	r.seed = (r.seed*9301 + 49297) % 233280
	return float64(r.seed) / 233280
}

// intn returns an integer in [min,max] using the client's rounding:
// floor(next * (max-min+1)) + min. max < min degenerates to min, which
// the subtraction branch relies on when the minuend is 1.
func (r *lcg) intn(min, max int) int {
	return int(r.next()*float64(max-min+1)) + min
}

func (r *lcg) choice(b []byte) byte {
	return b[r.intn(0, len(b)-1)]
}

// seedFor composes YYYYMMDD from the UTC date.
func seedFor(t time.Time) int64 {
	u := t.UTC()
	return int64(u.Year())*10000 + int64(u.Month())*100 + int64(u.Day())
}

// Number returns the puzzle number for t: whole days since Epoch, plus one.
// Puzzle numbers are the identity used to detect a day change.
func Number(t time.Time) int {
	return int(t.UTC().Sub(Epoch).Hours()/24) + 1
}

// ForDate generates the canonical puzzle equation for a date, in the form
// "N OP N = R" with single spaces.
//
// Operand ranges keep results inside [0,999]:
//   - addition/subtraction: operands 1..99, subtrahend bounded by the minuend
//   - multiplication: operands 2..15
//   - division: divisor 2..12 and quotient 1..20 drawn first, dividend derived,
//     so the division is always exact
func ForDate(t time.Time) string {
	rng := &lcg{seed: seedFor(t)}
	op := rng.choice(operators)

	var a, b, result int
	for attempt := 0; attempt < maxAttempts; attempt++ {
		switch op {
		case '+':
			a = rng.intn(1, 99)
			b = rng.intn(1, 99)
			result = a + b
		case '-':
			a = rng.intn(1, 99)
			hi := a - 1
			if hi > 99 {
				hi = 99
			}
			b = rng.intn(1, hi)
			result = a - b
		case '*':
			a = rng.intn(2, 15)
			b = rng.intn(2, 15)
			result = a * b
		case '/':
			b = rng.intn(2, 12)
			result = rng.intn(1, 20)
			a = b * result
		}
		if result >= 0 && result <= 999 {
			return fmt.Sprintf("%d %c %d = %d", a, op, b, result)
		}
	}
	// Unreachable with the ranges above; kept as a safety net.
	return "1 + 2 = 3"
}

// Today returns the current UTC day's puzzle.
func Today() string {
	return ForDate(time.Now())
}
