// internal/game/feedback.go
//
// Per-character feedback scoring for a guess against the target equation.
// Responsibilities:
//   - Score guesses using the two-pass Wordle algorithm, applied to every
//     character of the rendered equation: digits, operators, '=' and spaces.
//   - Fold all guesses into per-symbol keyboard feedback.
//
// Pass order matters: all exact matches are resolved before any present
// match, so a character is never marked present at the cost of a later
// exact match elsewhere.

package game

// Score implements the two-pass scoring algorithm over raw characters.
//
// Pass 1:
//   - Mark positional matches as exact; flag those target positions consumed.
//
// Pass 2:
//   - For each unscored guess character, scan unconsumed target positions
//     left to right; the first value match is consumed and scored present,
//     otherwise the character is absent.
//
// This handles repeated characters in both guess and target correctly.
func Score(guess, target string) []Mark {
	marks := make([]Mark, len(guess))
	used := make([]bool, len(target))

	for i := 0; i < len(guess); i++ {
		if i < len(target) && guess[i] == target[i] {
			marks[i] = MarkExact
			used[i] = true
		}
	}

	for i := 0; i < len(guess); i++ {
		if marks[i] == MarkExact {
			continue
		}
		marks[i] = MarkAbsent
		for j := 0; j < len(target); j++ {
			if !used[j] && guess[i] == target[j] {
				marks[i] = MarkPresent
				used[j] = true
				break
			}
		}
	}
	return marks
}

// AllExact returns true if every mark is MarkExact.
func AllExact(m []Mark) bool {
	for _, x := range m {
		if x != MarkExact {
			return false
		}
	}
	return true
}

// rank orders marks for the keyboard fold: exact beats present beats absent.
func rank(m Mark) int {
	switch m {
	case MarkExact:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	}
	return 0
}

// KeyboardFeedback folds every guess's feedback into a best-seen mark per
// symbol, for keyboard coloring. Recomputed from scratch on each call; the
// fold is cheap and avoids stale incremental state.
func KeyboardFeedback(guesses []string, target string) map[string]Mark {
	keys := make(map[string]Mark)
	for _, g := range guesses {
		marks := Score(g, target)
		for i := 0; i < len(g); i++ {
			if g[i] == ' ' {
				continue
			}
			k := string(g[i])
			if rank(marks[i]) > rank(keys[k]) {
				keys[k] = marks[i]
			}
		}
	}
	return keys
}
