// internal/game/validate.go
//
// Guess validation for equation guesses.
// Responsibilities:
//   - Shape check: "NUM OP NUM = RESULT", single spaces, 1-3 digit numbers.
//   - Range check: all numbers within 0..999.
//   - Arithmetic check: the left-hand side re-evaluated through the equation
//     package must equal the stated result; division must be exact.
//   - Hard-mode policy: hints revealed by earlier guesses must be reused.
//
// Validation never mutates state; it returns nil or one sentinel reason.

package game

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gauravc/numble/internal/equation"
)

var (
	ErrEmptyGuess        = errors.New("please enter an equation")
	ErrBadFormat         = errors.New("invalid equation format")
	ErrOutOfRange        = errors.New("numbers must be 0-999")
	ErrNotWholeDivision  = errors.New("division must result in whole number")
	ErrIncorrectEquation = errors.New("equation is not correct")
)

// guessPattern matches the canonical guess shape, e.g. "12 + 34 = 46".
var guessPattern = regexp.MustCompile(`^\d{1,3} [+*/-] \d{1,3} = \d{1,3}$`)

// HardModeError reports a hard-mode violation, naming the missing hint.
type HardModeError struct {
	Char     byte // the revealed character that was not reused
	Position int  // required position for exact hints, -1 for present hints
}

func (e *HardModeError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("position %d must be %q", e.Position+1, string(e.Char))
	}
	return fmt.Sprintf("guess must contain %q", string(e.Char))
}

// Validate checks a raw guess and returns nil or a rejection reason.
func Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyGuess
	}
	if !guessPattern.MatchString(raw) {
		return ErrBadFormat
	}

	parts := strings.Split(raw, " ")
	a, _ := strconv.Atoi(parts[0])
	op := parts[1]
	b, _ := strconv.Atoi(parts[2])
	want, _ := strconv.Atoi(parts[4])
	if a > 999 || b > 999 || want > 999 {
		return ErrOutOfRange
	}

	if op == "/" {
		if b == 0 {
			// Division by zero reads as a wrong equation, not a rounding issue.
			return ErrIncorrectEquation
		}
		if a%b != 0 {
			return ErrNotWholeDivision
		}
	}

	got, err := equation.Evaluate(parts[0] + op + parts[2])
	if err != nil {
		return ErrIncorrectEquation
	}
	if got != want {
		return ErrIncorrectEquation
	}
	return nil
}

// CheckHardMode enforces the hard-mode policy: every exact hint from prior
// guesses must stay in place, and every present hint must appear somewhere.
// Hints are recomputed as a pure fold over the guess history.
func CheckHardMode(prior []string, guess, target string) error {
	requiredAt := make(map[int]byte) // position -> character
	requiredAny := make(map[byte]bool)

	for _, p := range prior {
		marks := Score(p, target)
		for i := 0; i < len(p); i++ {
			switch marks[i] {
			case MarkExact:
				requiredAt[i] = p[i]
			case MarkPresent:
				requiredAny[p[i]] = true
			}
		}
	}

	for pos, c := range requiredAt {
		if pos >= len(guess) || guess[pos] != c {
			return &HardModeError{Char: c, Position: pos}
		}
	}
	for c := range requiredAny {
		if !strings.Contains(guess, string(c)) {
			return &HardModeError{Char: c, Position: -1}
		}
	}
	return nil
}
