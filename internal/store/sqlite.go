// internal/store/sqlite.go
//
// SQLite implementation of session.Store.
// Sessions live in a flat table keyed by ID, guesses serialized as a JSON
// column. The optimistic version check rides on the UPDATE's WHERE clause:
// a row update that matches zero rows means either a lost race or an
// expired/deleted session, disambiguated with a follow-up read.
//
// Expiry is enforced at read time (expires_at in every WHERE) and dead rows
// are purged opportunistically on create.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gauravc/numble/internal/session"
)

// SQLite is a session.Store backed by a sessions table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an opened database. The sessions table must exist
// (created by the server's migrations).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Create inserts the session row, purging expired rows first.
func (s *SQLite) Create(ctx context.Context, rec *session.Record, expiresAt time.Time) error {
	_, _ = s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, nowRFC3339())

	guesses, err := json.Marshal(rec.Guesses)
	if err != nil {
		return fmt.Errorf("marshal guesses: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions
            (id, puzzle_number, puzzle, created_at, creator_id, opponent_id,
             current_turn, guesses, game_status, winner_id, version, expires_at)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.PuzzleNumber, rec.Puzzle, rec.CreatedAt.Format(time.RFC3339),
		rec.CreatorID, rec.OpponentID, string(rec.CurrentTurn), string(guesses),
		string(rec.GameStatus), rec.WinnerID, rec.Version, expiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get loads a live session row.
func (s *SQLite) Get(ctx context.Context, id string) (*session.Record, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, puzzle_number, puzzle, created_at, creator_id, opponent_id,
               current_turn, guesses, game_status, winner_id, version
        FROM sessions WHERE id=? AND expires_at > ?`, id, nowRFC3339())
	return scanSession(row)
}

// Update writes the record back iff the stored version still matches.
func (s *SQLite) Update(ctx context.Context, rec *session.Record) error {
	guesses, err := json.Marshal(rec.Guesses)
	if err != nil {
		return fmt.Errorf("marshal guesses: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
        UPDATE sessions
        SET opponent_id=?, current_turn=?, guesses=?, game_status=?,
            winner_id=?, version=version+1
        WHERE id=? AND version=? AND expires_at > ?`,
		rec.OpponentID, string(rec.CurrentTurn), string(guesses),
		string(rec.GameStatus), rec.WinnerID,
		rec.ID, rec.Version, nowRFC3339(),
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Zero rows: either the version moved or the row is gone/expired.
		if _, err := s.Get(ctx, rec.ID); errors.Is(err, session.ErrNotFound) {
			return session.ErrNotFound
		}
		return session.ErrConflict
	}
	rec.Version++
	return nil
}

func scanSession(row *sql.Row) (*session.Record, error) {
	var rec session.Record
	var created, turn, status, guesses string
	err := row.Scan(&rec.ID, &rec.PuzzleNumber, &rec.Puzzle, &created,
		&rec.CreatorID, &rec.OpponentID, &turn, &guesses, &status,
		&rec.WinnerID, &rec.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.CurrentTurn = session.Turn(turn)
	rec.GameStatus = session.Status(status)
	if err := json.Unmarshal([]byte(guesses), &rec.Guesses); err != nil {
		return nil, fmt.Errorf("decode guesses: %w", err)
	}
	return &rec, nil
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
