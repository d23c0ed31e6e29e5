// internal/equation/equation.go
//
// Left-to-right arithmetic evaluator for equation guesses.
// Responsibilities:
//   - Tokenize a cleaned expression (digits and + - * / only).
//   - Evaluate strictly left to right — NO operator precedence. "2+3*4" is 20,
//     not 14. This matches the game's on-tile arithmetic.
//   - Report division by zero and malformed token streams as distinct errors.
//
// The evaluator is a pure function of its input string and is shared by the
// guess validator and the puzzle generator.

package equation

import "errors"

var (
	// ErrDivisionByZero is returned when any step divides by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrMalformed is returned for token streams that do not alternate
	// number/operator or contain invalid characters.
	ErrMalformed = errors.New("malformed expression")

	// ErrInexactDivision is returned when a division step leaves a remainder.
	// The grammar only admits whole-number equations.
	ErrInexactDivision = errors.New("division leaves a remainder")
)

// token is either a number or a single operator rune.
type token struct {
	num int
	op  rune
}

// Evaluate computes the integer value of expr, applying operators in
// encounter order with a running accumulator.
//
// Division must be exact; a step that leaves a remainder returns
// ErrInexactDivision.
func Evaluate(expr string) (int, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 || tokens[0].op != 0 {
		return 0, ErrMalformed
	}
	// Alternation check: number, operator, number, ...
	if len(tokens)%2 == 0 {
		return 0, ErrMalformed
	}

	acc := tokens[0].num
	for i := 1; i < len(tokens); i += 2 {
		op := tokens[i]
		operand := tokens[i+1]
		if op.op == 0 || operand.op != 0 {
			return 0, ErrMalformed
		}
		switch op.op {
		case '+':
			acc += operand.num
		case '-':
			acc -= operand.num
		case '*':
			acc *= operand.num
		case '/':
			if operand.num == 0 {
				return 0, ErrDivisionByZero
			}
			if acc%operand.num != 0 {
				return 0, ErrInexactDivision
			}
			acc /= operand.num
		default:
			return 0, ErrMalformed
		}
	}
	return acc, nil
}

// tokenize splits expr into number and operator tokens. Spaces are ignored;
// any other character is malformed.
func tokenize(expr string) ([]token, error) {
	var out []token
	num := 0
	inNum := false
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
			inNum = true
		case r == '+' || r == '-' || r == '*' || r == '/':
			if !inNum {
				return nil, ErrMalformed
			}
			out = append(out, token{num: num})
			out = append(out, token{op: r})
			num, inNum = 0, false
		case r == ' ':
			// tolerated; guesses are validated for spacing elsewhere
		default:
			return nil, ErrMalformed
		}
	}
	if !inNum {
		return nil, ErrMalformed
	}
	out = append(out, token{num: num})
	return out, nil
}
