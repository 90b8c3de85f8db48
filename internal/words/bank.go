// internal/words/bank.go
//
// Bank owns the two word lists the game needs:
//   - answers: words eligible to be chosen as a secret.
//   - allowed: the superset of words accepted as guesses (answers always
//     included).
//
// A Bank is an explicit instance passed to each session, never a package
// global, so tests can substitute controlled lists. It is immutable after
// New and safe to share across sessions.

package words

import (
	"crypto/rand"
	"errors"
	"math/big"
	mrand "math/rand"
	"strings"
)

// ErrEmptyPool means no valid answer words were provided. Startup should
// treat it as fatal; no session can be created without a pool.
var ErrEmptyPool = errors.New("words: answer pool is empty")

// WordLength matches the game's fixed word size.
const WordLength = 5

// Bank holds the loaded word lists and a pick function for secret
// selection.
type Bank struct {
	answers []string
	allowed map[string]struct{}
	pick    func(n int) int
}

// Option configures a Bank at construction.
type Option func(*Bank)

// WithSeed makes PickSecret deterministic, for tests and daily-style
// reproducibility.
func WithSeed(seed int64) Option {
	return func(b *Bank) {
		r := mrand.New(mrand.NewSource(seed))
		b.pick = r.Intn
	}
}

// New builds a Bank from raw word lists. Words are normalized to
// lowercase; entries that are not exactly five ASCII letters are dropped.
// Answers are always also allowed. Returns ErrEmptyPool if no valid
// answer survives filtering.
func New(answers, allowed []string, opts ...Option) (*Bank, error) {
	b := &Bank{
		allowed: make(map[string]struct{}, len(answers)+len(allowed)),
		pick:    cryptoPick,
	}
	for _, w := range answers {
		w = Normalize(w)
		if !valid(w) {
			continue
		}
		b.answers = append(b.answers, w)
		b.allowed[w] = struct{}{}
	}
	for _, w := range allowed {
		w = Normalize(w)
		if valid(w) {
			b.allowed[w] = struct{}{}
		}
	}
	if len(b.answers) == 0 {
		return nil, ErrEmptyPool
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// PickSecret selects one answer uniformly at random (or via the seeded
// source when WithSeed was used).
func (b *Bank) PickSecret() (string, error) {
	if len(b.answers) == 0 {
		return "", ErrEmptyPool
	}
	return b.answers[b.pick(len(b.answers))], nil
}

// IsValidGuess reports whether word, case-normalized, is exactly five
// letters and present in the allowed set. Pure; no side effects.
func (b *Bank) IsValidGuess(word string) bool {
	word = Normalize(word)
	if !valid(word) {
		return false
	}
	_, ok := b.allowed[word]
	return ok
}

// Answers returns the answer pool in load order. Callers must treat the
// slice as read-only; daily mode indexes into it deterministically.
func (b *Bank) Answers() []string { return b.answers }

// Counts returns the sizes of the answer pool and the allowed set.
func (b *Bank) Counts() (answers, allowed int) {
	return len(b.answers), len(b.allowed)
}

// Normalize lowercases and trims a candidate word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// valid reports whether w is exactly WordLength lowercase ASCII letters.
func valid(w string) bool {
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

// cryptoPick draws an index in [0,n) from crypto/rand. A reader failure
// falls back to the first answer rather than panicking mid-game.
func cryptoPick(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
