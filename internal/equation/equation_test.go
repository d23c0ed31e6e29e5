package equation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateLeftToRight(t *testing.T) {
	tests := []struct {
		expr string
		want int
	}{
		{"12+34", 46},
		{"99-33", 66},
		{"8*7", 56},
		{"84/12", 7},
		{"2+3*4", 20}, // no precedence: (2+3)*4
		{"10-4-3", 3},
		{"100/5/2", 10},
		{"8*7-6", 50},
		{"0+0", 0},
		{"7", 7},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expr)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
	}
}

func TestEvaluateIgnoresSpaces(t *testing.T) {
	got, err := Evaluate("12 + 34")
	require.NoError(t, err)
	assert.Equal(t, 46, got)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := Evaluate("5/0")
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Evaluate("10+2/0")
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestEvaluateInexactDivision(t *testing.T) {
	_, err := Evaluate("10/3")
	assert.ErrorIs(t, err, ErrInexactDivision)
}

func TestEvaluateMalformed(t *testing.T) {
	for _, expr := range []string{
		"",
		"+",
		"1+",
		"+1",
		"1++2",
		"1+2+",
		"abc",
		"1.5+2",
		"(1+2)",
	} {
		_, err := Evaluate(expr)
		assert.ErrorIs(t, err, ErrMalformed, "expr %q", expr)
	}
}
