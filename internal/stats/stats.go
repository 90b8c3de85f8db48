// internal/stats/stats.go
//
// Player statistics over the results table: games played, win rate, win
// distribution by guess count, and streaks. The terminal game records
// under the fixed player id "local"; the server records per user.

package stats

import (
	"context"
	"database/sql"
	"time"

	"wordle/internal/game"
)

// LocalPlayer is the player id the terminal game records under.
const LocalPlayer = "local"

// Summary aggregates a player's finished games.
type Summary struct {
	Played        int                   `json:"played"`
	Wins          int                   `json:"wins"`
	Distribution  [game.MaxAttempts]int `json:"distribution"` // wins indexed by guesses-1
	CurrentStreak int                   `json:"currentStreak"`
	MaxStreak     int                   `json:"maxStreak"`
}

// WinRate returns wins/played as a percentage, 0 when nothing played.
func (s Summary) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Played) * 100
}

// Store wraps the results table.
type Store struct{ db *sql.DB }

// New wraps an opened database handle.
func New(db *sql.DB) *Store { return &Store{db: db} }

// Record appends one finished game for the player.
func (s *Store) Record(ctx context.Context, playerID string, won bool, guesses int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results(player_id, won, guesses, played_at) VALUES(?,?,?,?)`,
		playerID, won, guesses, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Summarize computes the player's summary from their full history,
// oldest game first. Streaks count consecutive wins; a loss resets.
func (s *Store) Summarize(ctx context.Context, playerID string) (Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT won, guesses FROM results WHERE player_id=? ORDER BY id ASC`,
		playerID,
	)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	var out Summary
	streak := 0
	for rows.Next() {
		var won bool
		var guesses int
		if err := rows.Scan(&won, &guesses); err != nil {
			return Summary{}, err
		}
		out.Played++
		if won {
			out.Wins++
			streak++
			if guesses >= 1 && guesses <= game.MaxAttempts {
				out.Distribution[guesses-1]++
			}
			if streak > out.MaxStreak {
				out.MaxStreak = streak
			}
		} else {
			streak = 0
		}
	}
	out.CurrentStreak = streak
	return out, rows.Err()
}
