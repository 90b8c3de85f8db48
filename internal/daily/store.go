// internal/daily/store.go
//
// SQLite persistence for daily results: one row per player per date,
// enforced by UNIQUE(player_id, date). Feeds the per-date leaderboard.

package daily

import (
	"context"
	"database/sql"
	"errors"
)

// Result is one finished daily game.
type Result struct {
	PlayerID  string `json:"playerId"`
	Date      string `json:"date"`
	Puzzle    int    `json:"puzzle"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// LeaderboardRow is a leaderboard entry for one date.
type LeaderboardRow struct {
	PlayerID  string `json:"playerId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store wraps the daily_results table.
type Store struct{ db *sql.DB }

// NewStore wraps an opened database handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the player has a result for the date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// ResultFor returns the player's recorded result for a date, or nil when
// the player has not finished that day's puzzle.
func (s *Store) ResultFor(ctx context.Context, playerID, date string) (*Result, error) {
	r := Result{PlayerID: playerID, Date: date}
	err := s.db.QueryRowContext(ctx,
		`SELECT puzzle, won, guesses, elapsed_ms FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&r.Puzzle, &r.Won, &r.Guesses, &r.ElapsedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertResult records a finished daily game. A second result for the
// same player and date is silently ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(player_id, date, puzzle, won, guesses, elapsed_ms)
		 VALUES(?,?,?,?,?,?)`,
		r.PlayerID, r.Date, r.Puzzle, r.Won, r.Guesses, r.ElapsedMs,
	)
	return err
}

// Leaderboard returns the fastest winners for a date, ties broken by
// guess count then arrival order.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, guesses, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
