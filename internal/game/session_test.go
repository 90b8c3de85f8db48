package game

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDict is a fixed word list standing in for words.Bank.
type fakeDict map[string]bool

func (d fakeDict) IsValidGuess(w string) bool { return d[w] }

func dict(words ...string) fakeDict {
	d := make(fakeDict, len(words))
	for _, w := range words {
		d[w] = true
	}
	return d
}

func mustSession(t *testing.T, d Dictionary, secret string) *Session {
	t.Helper()
	s, err := NewSession(d, secret)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsBadSecret(t *testing.T) {
	for _, w := range []string{"", "abc", "applesauce", "ab-de", "app1e", "äbcde"} {
		_, err := NewSession(dict("apple"), w)
		assert.ErrorIs(t, err, ErrInvalidSecret, "secret %q", w)
	}

	// Case and surrounding whitespace normalize rather than reject.
	s, err := NewSession(dict("apple"), " APPLE\n")
	require.NoError(t, err)
	assert.Equal(t, "apple", s.Reveal())
}

func TestSessionWin(t *testing.T) {
	s := mustSession(t, dict("crane", "apple"), "apple")

	g, err := s.Submit("crane")
	require.NoError(t, err)
	assert.Equal(t, InProgress, s.Status())
	assert.Equal(t, 5, s.AttemptsRemaining())
	assert.Equal(t, "crane", g.Word)

	g, err = s.Submit("APPLE")
	require.NoError(t, err)
	assert.Equal(t, Won, s.Status())
	for _, m := range g.Marks {
		assert.Equal(t, StatusCorrect, m)
	}
}

func TestSessionWinOnLastAttempt(t *testing.T) {
	s := mustSession(t, dict("crane", "apple"), "apple")
	for i := 0; i < MaxAttempts-1; i++ {
		_, err := s.Submit("crane")
		require.NoError(t, err)
	}
	_, err := s.Submit("apple")
	require.NoError(t, err)
	assert.Equal(t, Won, s.Status())
}

func TestSessionLossAndLockout(t *testing.T) {
	s := mustSession(t, dict("crane", "apple"), "apple")
	for i := 0; i < MaxAttempts; i++ {
		_, err := s.Submit("crane")
		require.NoError(t, err)
	}
	assert.Equal(t, Lost, s.Status())
	assert.Equal(t, 0, s.AttemptsRemaining())
	assert.Equal(t, "apple", s.Reveal())

	_, err := s.Submit("crane")
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Len(t, s.History(), MaxAttempts)
}

func TestSessionClosedBeatsValidation(t *testing.T) {
	s := mustSession(t, dict("apple"), "apple")
	_, err := s.Submit("apple")
	require.NoError(t, err)

	// A junk word after the win still reports the closed session, not the
	// invalid word.
	_, err = s.Submit("zzzzz")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSessionRejectsInvalidWord(t *testing.T) {
	s := mustSession(t, dict("crane", "apple"), "apple")

	for _, w := range []string{"zzzzz", "app", "applesauce", ""} {
		_, err := s.Submit(w)
		assert.ErrorIs(t, err, ErrInvalidWord, "word %q", w)
	}
	assert.Equal(t, MaxAttempts, s.AttemptsRemaining())
	assert.Empty(t, s.History())
	assert.Equal(t, InProgress, s.Status())
}

func TestKeyboardHintsMonotonic(t *testing.T) {
	s := mustSession(t, dict("pearl", "apple", "lapel"), "pearl")

	_, err := s.Submit("apple")
	require.NoError(t, err)
	// "apple" vs "pearl": a present, first p present, e present.
	assert.Equal(t, StatusPresent, s.HintFor('p'))
	assert.Equal(t, StatusPresent, s.HintFor('a'))
	assert.Equal(t, StatusUnseen, s.HintFor('z'))

	_, err = s.Submit("lapel")
	require.NoError(t, err)
	// The trailing L of "lapel" lands Correct and must stick.
	assert.Equal(t, StatusCorrect, s.HintFor('l'))

	_, err = s.Submit("apple")
	require.NoError(t, err)
	// Re-guessing a word with L only Present must not downgrade the hint.
	assert.Equal(t, StatusCorrect, s.HintFor('l'))
	assert.Equal(t, StatusCorrect, s.HintFor('L'))
}

func TestHistoryIsACopy(t *testing.T) {
	s := mustSession(t, dict("crane", "apple"), "apple")
	_, err := s.Submit("crane")
	require.NoError(t, err)

	h := s.History()
	h[0].Word = "mutated"
	assert.Equal(t, "crane", s.History()[0].Word)
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := mustSession(t, dict("apple"), "apple")
	b := mustSession(t, dict("apple"), "apple")
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestConcurrentSubmits(t *testing.T) {
	s := mustSession(t, dict("crane", "apple"), "apple")

	var wg sync.WaitGroup
	var accepted int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Submit("crane"); err == nil {
				atomic.AddInt32(&accepted, 1)
			}
		}()
	}
	wg.Wait()

	// Exactly MaxAttempts submissions land; the rest see the closed session.
	assert.Equal(t, int32(MaxAttempts), accepted)
	assert.Len(t, s.History(), MaxAttempts)
	assert.Equal(t, Lost, s.Status())
}
