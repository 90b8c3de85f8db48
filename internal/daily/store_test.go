package daily

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupStoreMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	return NewStore(db), mock, func() { db.Close() }
}

func TestAlreadyPlayed(t *testing.T) {
	st, mock, cleanup := setupStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`)).
		WithArgs("p1", "2026-08-23").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	played, err := st.AlreadyPlayed(context.Background(), "p1", "2026-08-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !played {
		t.Errorf("expected played=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestResultFor(t *testing.T) {
	st, mock, cleanup := setupStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT puzzle, won, guesses, elapsed_ms FROM daily_results WHERE player_id=? AND date=?`)).
		WithArgs("p1", "2026-08-23").
		WillReturnRows(sqlmock.NewRows([]string{"puzzle", "won", "guesses", "elapsed_ms"}).
			AddRow(1892, true, 3, 45000))

	r, err := st.ResultFor(context.Background(), "p1", "2026-08-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil || r.Puzzle != 1892 || !r.Won || r.Guesses != 3 {
		t.Errorf("unexpected result: %+v", r)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestResultForMissing(t *testing.T) {
	st, mock, cleanup := setupStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT puzzle, won, guesses, elapsed_ms FROM daily_results`)).
		WithArgs("p1", "2026-08-23").
		WillReturnError(sql.ErrNoRows)

	r, err := st.ResultFor(context.Background(), "p1", "2026-08-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil result, got %+v", r)
	}
}

func TestInsertResult(t *testing.T) {
	st, mock, cleanup := setupStoreMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT OR IGNORE INTO daily_results(player_id, date, puzzle, won, guesses, elapsed_ms)`)).
		WithArgs("p1", "2026-08-23", 1892, true, 4, 61250).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := st.InsertResult(context.Background(), Result{
		PlayerID: "p1", Date: "2026-08-23", Puzzle: 1892, Won: true, Guesses: 4, ElapsedMs: 61250,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestLeaderboard(t *testing.T) {
	st, mock, cleanup := setupStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT player_id, guesses, elapsed_ms`).
		WithArgs("2026-08-23", 20).
		WillReturnRows(sqlmock.NewRows([]string{"player_id", "guesses", "elapsed_ms"}).
			AddRow("p1", 3, 45000).
			AddRow("p2", 4, 52000))

	rows, err := st.Leaderboard(context.Background(), "2026-08-23", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].PlayerID != "p1" || rows[1].Guesses != 4 {
		t.Errorf("unexpected rows: %+v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestLeaderboardQueryError(t *testing.T) {
	st, mock, cleanup := setupStoreMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT player_id, guesses, elapsed_ms`).
		WillReturnError(errors.New("query failed"))

	if _, err := st.Leaderboard(context.Background(), "2026-08-23", 5); err == nil {
		t.Errorf("expected error, got nil")
	}
}
