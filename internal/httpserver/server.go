// internal/httpserver/server.go
//
// HTTP front for the game engine, for people who want the web client
// instead of the terminal.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess,
//     GET /game/{id}/share.
//   - Daily endpoints mounted under /daily.
//   - Auth + stats endpoints: /auth/*, /stats/me.
//
// Database writes for history/stats are best effort: a failed insert is
// logged, never surfaced as a gameplay error.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"wordle/internal/game"
	"wordle/internal/share"
	"wordle/internal/stats"
	"wordle/internal/store"
	"wordle/internal/words"
)

// Server bundles router, word bank, session store, and DB handle.
type Server struct {
	r     *chi.Mux
	bank  *words.Bank
	store store.Store
	db    *sql.DB
	stats *stats.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(bank *words.Bank, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		bank:  bank,
		store: st,
		db:    db,
		stats: stats.New(db),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/{id}/share","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		answers, allowed := s.bank.Counts()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": answers, "allowed": allowed})
	})

	// Game endpoints — guests can play.
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.Get("/game/{id}/share", s.handleShare)

	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for the single origin named by
// CLIENT_ORIGIN (default http://localhost:5173).
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID      string `json:"gameId"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
}

// handleNewGame creates a new in-memory session and persists an owner row
// for history.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	secret := req.Answer
	if secret == "" {
		var err error
		secret, err = s.bank.PickSecret()
		if err != nil {
			log.Error().Err(err).Msg("pick secret")
			http.Error(w, `{"error":"no_words"}`, http.StatusInternalServerError)
			return
		}
	}

	sess, err := game.NewSession(s.bank, secret)
	if err != nil {
		http.Error(w, `{"error":"invalid_answer"}`, http.StatusUnprocessableEntity)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if me, _ := userFrom(r); me != nil {
		if _, err := s.db.Exec(`INSERT INTO games (id, user_id, mode, status, guesses, started_at)
		                        VALUES (?,?,?,?,0,?)`, sess.ID(), me.ID, "random", game.InProgress.String(), now); err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID()).Msg("insert user game row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		if _, err := s.db.Exec(`INSERT INTO games (id, anonymous_id, mode, status, guesses, started_at)
		                        VALUES (?,?,?,?,0,?)`, sess.ID(), anon, "random", game.InProgress.String(), now); err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID()).Msg("insert anon game row")
		}
	}

	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:      sess.ID(),
		WordLength:  game.WordLength,
		MaxAttempts: game.MaxAttempts,
	})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks             []game.LetterStatus          `json:"marks"`
	State             game.SessionStatus           `json:"state"`
	AttemptsRemaining int                          `json:"attemptsRemaining"`
	KeyboardHints     map[string]game.LetterStatus `json:"keyboardHints"`
	Answer            string                       `json:"answer,omitempty"` // revealed on loss only
}

// handleGuess applies a guess to a stored session and persists progress.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	g, err := sess.Submit(req.Guess)
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
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	s.persistProgress(w, r, sess)

	res := guessRes{
		Marks:             g.Marks,
		State:             sess.Status(),
		AttemptsRemaining: sess.AttemptsRemaining(),
		KeyboardHints:     hintsByLetter(sess),
	}
	if sess.Status() == game.Lost {
		res.Answer = sess.Reveal()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// persistProgress updates the games row and, when the session just
// finished, records the owner's result. Best effort throughout.
func (s *Server) persistProgress(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	me, _ := userFrom(r)
	ownerClause := `anonymous_id=?`
	ownerArg := any(s.ensureAnonID(w, r))
	playerID := ownerArg.(string)
	if me != nil {
		ownerClause = `user_id=?`
		ownerArg = any(me.ID)
		playerID = me.ID
	}

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin progress tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET guesses = guesses + 1 WHERE id=? AND `+ownerClause, sess.ID(), ownerArg); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}
	if sess.Status().Finished() {
		if _, err := tx.Exec(`UPDATE games SET status=?, finished_at=? WHERE id=? AND `+ownerClause,
			sess.Status().String(), time.Now().UTC().Format(time.RFC3339), sess.ID(), ownerArg); err != nil {
			log.Warn().Err(err).Msg("finish game")
		}
		if _, err := tx.Exec(`INSERT INTO results(player_id, won, guesses, played_at) VALUES(?,?,?,?)`,
			playerID, sess.Status() == game.Won, len(sess.History()), time.Now().UTC().Format(time.RFC3339)); err != nil {
			log.Warn().Err(err).Str("player", playerID).Msg("record result")
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit progress tx")
	}
}

// handleShare renders the share grid for a finished session.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	text, err := share.Render(sess, -1)
	if errors.Is(err, game.ErrNotFinished) {
		http.Error(w, `{"error":"game_in_progress"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"render_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"text": text})
}

// hintsByLetter converts session hints to a JSON-friendly map, omitting
// unseen letters.
func hintsByLetter(sess *game.Session) map[string]game.LetterStatus {
	out := make(map[string]game.LetterStatus)
	for r, st := range sess.KeyboardHints() {
		if st != game.StatusUnseen {
			out[string(r)] = st
		}
	}
	return out
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
