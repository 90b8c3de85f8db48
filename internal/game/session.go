// internal/game/session.go
//
// Session is the state machine for a single game.
// Responsibilities:
//   - Validate and apply guesses one at a time (dictionary, lifecycle).
//   - Score guesses via Score and keep an append-only history.
//   - Merge per-letter results into monotonic keyboard hints.
//   - Track state transitions: in_progress -> won/lost.
//
// A Session is safe for concurrent use; submissions and reads serialize
// on an internal lock.

package game

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	// WordLength is the fixed length of secrets and guesses.
	WordLength = 5
	// MaxAttempts is the number of guesses allowed per session.
	MaxAttempts = 6
)

var (
	// ErrInvalidWord rejects a guess that is not in the dictionary or has
	// the wrong shape. The session is left unchanged.
	ErrInvalidWord = errors.New("game: word not in dictionary")
	// ErrInvalidSecret rejects session creation with a secret that is not
	// exactly WordLength lowercase ASCII letters after normalization.
	ErrInvalidSecret = errors.New("game: secret must be five letters")
	// ErrSessionClosed rejects a guess submitted after the game ended.
	ErrSessionClosed = errors.New("game: session already finished")
	// ErrNotFinished rejects operations that need a terminal session,
	// such as rendering the share grid.
	ErrNotFinished = errors.New("game: session still in progress")
)

// Dictionary is the word-validation surface a Session needs. words.Bank
// implements it; tests substitute small fixed lists.
type Dictionary interface {
	IsValidGuess(word string) bool
}

// Guess is one scored attempt. Immutable once returned by Submit.
type Guess struct {
	Word  string         `json:"word"`
	Marks []LetterStatus `json:"marks"`
}

// Session holds all state for one game.
type Session struct {
	id     string
	secret string
	dict   Dictionary

	mu      sync.RWMutex
	guesses []Guess
	hints   [26]LetterStatus
	status  SessionStatus
}

// NewSession starts a game against secret, validating guesses with dict.
// The secret is normalized to lowercase and fixed for the session's life;
// anything other than five ASCII letters is ErrInvalidSecret. Scoring
// indexes the secret directly, so the check here is what keeps Score safe.
func NewSession(dict Dictionary, secret string) (*Session, error) {
	secret = strings.ToLower(strings.TrimSpace(secret))
	if !validSecret(secret) {
		return nil, ErrInvalidSecret
	}
	return &Session{
		id:     uuid.New().String(),
		secret: secret,
		dict:   dict,
	}, nil
}

// validSecret reports whether w is exactly WordLength lowercase ASCII
// letters.
func validSecret(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// AttemptsRemaining returns how many guesses are still allowed.
func (s *Session) AttemptsRemaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MaxAttempts - len(s.guesses)
}

// History returns the scored guesses made so far, oldest first. The
// returned slice is a copy; callers cannot alias session state.
func (s *Session) History() []Guess {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Guess, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// Reveal returns the secret. Callers should only show it on loss or an
// explicit player request.
func (s *Session) Reveal() string { return s.secret }

// Submit validates, scores, and records one guess.
//
// Precondition order matters: a finished session fails with
// ErrSessionClosed before any word validation; an unknown or malformed
// word fails with ErrInvalidWord and leaves the session untouched.
// On success the guess history, keyboard hints, and status all advance
// together and the scored guess is returned for display. Concurrent
// submissions for the same session serialize; only MaxAttempts of them
// can ever land.
func (s *Session) Submit(word string) (Guess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Finished() {
		return Guess{}, ErrSessionClosed
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != WordLength || !s.dict.IsValidGuess(word) {
		return Guess{}, ErrInvalidWord
	}

	g := Guess{Word: word, Marks: Score(s.secret, word)}
	s.guesses = append(s.guesses, g)
	s.mergeHints(g)

	switch {
	case allCorrect(g.Marks):
		s.status = Won
	case len(s.guesses) >= MaxAttempts:
		s.status = Lost
	}
	return g, nil
}

// mergeHints folds one scored guess into the keyboard hints. A letter's
// hint only ever improves: Correct beats Present beats Absent beats
// Unseen. Once Correct, always Correct.
func (s *Session) mergeHints(g Guess) {
	for i := 0; i < len(g.Word); i++ {
		j := g.Word[i] - 'a'
		if g.Marks[i] > s.hints[j] {
			s.hints[j] = g.Marks[i]
		}
	}
}

// KeyboardHints returns the best status seen per letter. Letters never
// guessed map to StatusUnseen.
func (s *Session) KeyboardHints() map[rune]LetterStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[rune]LetterStatus, 26)
	for i := 0; i < 26; i++ {
		out[rune('a'+i)] = s.hints[i]
	}
	return out
}

// HintFor returns the best status seen for one letter (a-z, either case).
func (s *Session) HintFor(r rune) LetterStatus {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return StatusUnseen
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hints[r-'a']
}
