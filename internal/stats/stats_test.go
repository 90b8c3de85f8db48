package stats

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return New(db), mock, func() { db.Close() }
}

func TestRecord(t *testing.T) {
	st, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO results(player_id, won, guesses, played_at) VALUES(?,?,?,?)`)).
		WithArgs(LocalPlayer, true, 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := st.Record(context.Background(), LocalPlayer, true, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummarize(t *testing.T) {
	st, mock, cleanup := setupMock(t)
	defer cleanup()

	// Oldest first: win(3), win(4), loss, win(3), win(6).
	mock.ExpectQuery(`SELECT won, guesses FROM results`).
		WithArgs(LocalPlayer).
		WillReturnRows(sqlmock.NewRows([]string{"won", "guesses"}).
			AddRow(true, 3).
			AddRow(true, 4).
			AddRow(false, 6).
			AddRow(true, 3).
			AddRow(true, 6))

	sum, err := st.Summarize(context.Background(), LocalPlayer)
	require.NoError(t, err)

	assert.Equal(t, 5, sum.Played)
	assert.Equal(t, 4, sum.Wins)
	assert.Equal(t, 2, sum.Distribution[2]) // two wins in 3
	assert.Equal(t, 1, sum.Distribution[3])
	assert.Equal(t, 1, sum.Distribution[5])
	assert.Equal(t, 2, sum.CurrentStreak)
	assert.Equal(t, 2, sum.MaxStreak)
	assert.InDelta(t, 80.0, sum.WinRate(), 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	st, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT won, guesses FROM results`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"won", "guesses"}))

	sum, err := st.Summarize(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, sum.Played)
	assert.Zero(t, sum.WinRate())
}

func TestSummarizeQueryError(t *testing.T) {
	st, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT won, guesses FROM results`).
		WillReturnError(errors.New("query failed"))

	_, err := st.Summarize(context.Background(), LocalPlayer)
	assert.Error(t, err)
}
