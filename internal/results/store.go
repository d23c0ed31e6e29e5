// internal/results/store.go
//
// Persistence for finished solo games and per-player statistics.
// Responsibilities:
//   - Record a result once per player per puzzle; the UNIQUE(player_id,
//     puzzle_number) row is the idempotence gate, so re-observing the same
//     terminal game never double-counts.
//   - Maintain aggregate counters (games, wins, streaks, distribution) by
//     folding each new result through game.Statistics.
//   - Serve the daily leaderboard: today's winners by attempts, then time.

package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gauravc/numble/internal/game"
)

// Result is one finished solo game.
type Result struct {
	PlayerID     string    `json:"playerId"`
	PuzzleNumber int       `json:"puzzleNumber"`
	Won          bool      `json:"won"`
	Guesses      int       `json:"guesses"`
	CompletedAt  time.Time `json:"completedAt"`
}

// LBRow is one leaderboard entry.
type LBRow struct {
	PlayerID    string `json:"playerId"`
	Guesses     int    `json:"guesses"`
	CompletedAt string `json:"completedAt"`
}

// Store wraps the database handle.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record persists a result and, if it is new, folds it into the player's
// counters inside one transaction. A duplicate (same player and puzzle) is
// a no-op.
func (s *Store) Record(ctx context.Context, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO results(player_id, puzzle_number, won, guesses, completed_at)
        VALUES (?,?,?,?,?)`,
		r.PlayerID, r.PuzzleNumber, r.Won, r.Guesses, r.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Already recorded for this puzzle; counters stay untouched.
		return tx.Commit()
	}

	stats, err := statsTx(ctx, tx, r.PlayerID)
	if err != nil {
		return err
	}
	stats.Update(r.Won, r.Guesses)

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO players (player_id, games_played, games_won, current_streak, max_streak,
                             dist1, dist2, dist3, dist4, dist5, dist6)
        VALUES (?,?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(player_id) DO UPDATE SET
            games_played=excluded.games_played, games_won=excluded.games_won,
            current_streak=excluded.current_streak, max_streak=excluded.max_streak,
            dist1=excluded.dist1, dist2=excluded.dist2, dist3=excluded.dist3,
            dist4=excluded.dist4, dist5=excluded.dist5, dist6=excluded.dist6`,
		r.PlayerID, stats.GamesPlayed, stats.GamesWon, stats.CurrentStreak, stats.MaxStreak,
		stats.Distribution[0], stats.Distribution[1], stats.Distribution[2],
		stats.Distribution[3], stats.Distribution[4], stats.Distribution[5],
	); err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return tx.Commit()
}

// Stats returns the player's counters; zero counters for unseen players.
func (s *Store) Stats(ctx context.Context, playerID string) (game.Statistics, error) {
	return statsQ(ctx, s.db.QueryRowContext, playerID)
}

func statsTx(ctx context.Context, tx *sql.Tx, playerID string) (game.Statistics, error) {
	return statsQ(ctx, tx.QueryRowContext, playerID)
}

type rowQuerier func(ctx context.Context, query string, args ...any) *sql.Row

func statsQ(ctx context.Context, q rowQuerier, playerID string) (game.Statistics, error) {
	var st game.Statistics
	err := q(ctx, `
        SELECT games_played, games_won, current_streak, max_streak,
               dist1, dist2, dist3, dist4, dist5, dist6
        FROM players WHERE player_id=?`, playerID,
	).Scan(&st.GamesPlayed, &st.GamesWon, &st.CurrentStreak, &st.MaxStreak,
		&st.Distribution[0], &st.Distribution[1], &st.Distribution[2],
		&st.Distribution[3], &st.Distribution[4], &st.Distribution[5])
	if errors.Is(err, sql.ErrNoRows) {
		return game.Statistics{}, nil
	}
	if err != nil {
		return game.Statistics{}, err
	}
	return st, nil
}

// Leaderboard returns the fastest wins for a puzzle number.
// Ordered by guesses ASC, then completion time ASC. Default limit 20.
func (s *Store) Leaderboard(ctx context.Context, puzzleNumber, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_id, guesses, completed_at
        FROM results
        WHERE puzzle_number=? AND won=1
        ORDER BY guesses ASC, completed_at ASC
        LIMIT ?`, puzzleNumber, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Guesses, &r.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
