// internal/httpserver/routes_daily.go
//
// Daily-challenge routes under /daily:
//   - POST /daily/new         → start or resume today's game
//   - POST /daily/guess       → submit a guess
//   - GET  /daily/leaderboard → top results for a date
//
// One play per player per day, enforced by the daily_results table plus
// an in-memory session held while the game is live. The day's word comes
// from daily.WordIndex over the answer pool.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"wordle/internal/daily"
	"wordle/internal/game"
	"wordle/internal/share"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	mu       sync.Mutex // guards sessions
	sessions map[string]*dailySession
}

// dailySession is the live state of one player's daily game.
type dailySession struct {
	Session *game.Session
	Date    string
	Puzzle  int
	Start   time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the date key, puzzle number, and answer for right now.
func (d *dailyServer) today() (date string, puzzle int, answer string) {
	now := time.Now()
	date = daily.DateKey(now)
	puzzle = daily.PuzzleNumber(now)
	answers := d.srv.bank.Answers()
	if len(answers) == 0 {
		return date, puzzle, ""
	}
	return date, puzzle, answers[daily.WordIndex(now, d.salt, len(answers))]
}

// playerID resolves the authenticated user or the anonymous cookie.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

type dailyNewRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Puzzle int    `json:"puzzle"`
	Played bool   `json:"played"`
}

// handleNew starts or resumes the player's daily session. If the player
// already has a persisted result for today, Played is true and no game is
// created.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	pid := d.playerID(w, r)
	date, puzzle, answer := d.today()
	if answer == "" {
		http.Error(w, `{"error":"no_words"}`, http.StatusInternalServerError)
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), pid, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Puzzle: puzzle, Played: true})
		return
	}

	key := pid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		gs, err := game.NewSession(d.srv.bank, answer)
		if err != nil {
			d.mu.Unlock()
			log.Error().Err(err).Str("date", date).Msg("create daily session")
			http.Error(w, `{"error":"no_words"}`, http.StatusInternalServerError)
			return
		}
		sess = &dailySession{
			Session: gs,
			Date:    date,
			Puzzle:  puzzle,
			Start:   time.Now(),
		}
		d.sessions[key] = sess
	}
	d.mu.Unlock()

	_ = json.NewEncoder(w).Encode(dailyNewRes{
		GameID: sess.Session.ID(),
		Date:   date,
		Puzzle: puzzle,
		Played: false,
	})
}

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

type dailyGuessRes struct {
	Marks             []game.LetterStatus `json:"marks"`
	State             game.SessionStatus  `json:"state"`
	AttemptsRemaining int                 `json:"attemptsRemaining"`
	Share             string              `json:"share,omitempty"` // set once finished
}

// handleGuess applies a guess to today's session and persists the result
// when the game finishes.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	pid := d.playerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	date, _, _ := d.today()

	key := pid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || p.GameID == "" || sess.Session.ID() != p.GameID {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return
	}

	g, err := sess.Session.Submit(p.Word)
	switch {
	case errors.Is(err, game.ErrSessionClosed):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	case errors.Is(err, game.ErrInvalidWord):
		http.Error(w, `{"error":"not_in_word_list"}`, http.StatusUnprocessableEntity)
		return
	case err != nil:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	res := dailyGuessRes{
		Marks:             g.Marks,
		State:             sess.Session.Status(),
		AttemptsRemaining: sess.Session.AttemptsRemaining(),
	}

	if sess.Session.Status().Finished() {
		won := sess.Session.Status() == game.Won
		if err := d.store.InsertResult(r.Context(), daily.Result{
			PlayerID:  pid,
			Date:      sess.Date,
			Puzzle:    sess.Puzzle,
			Won:       won,
			Guesses:   len(sess.Session.History()),
			ElapsedMs: int(time.Since(sess.Start).Milliseconds()),
		}); err != nil {
			log.Warn().Err(err).Str("player", pid).Msg("insert daily result")
		}
		if text, err := share.Render(sess.Session, sess.Puzzle); err == nil {
			res.Share = text
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

type leaderboardRes struct {
	Date string                 `json:"date"`
	Top  []daily.LeaderboardRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for a date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(leaderboardRes{Date: date, Top: rows})
}
