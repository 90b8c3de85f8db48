package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordle/internal/daily"
	"wordle/internal/game"
)

type listDict []string

func (d listDict) IsValidGuess(w string) bool {
	for _, x := range d {
		if x == w {
			return true
		}
	}
	return false
}

func keyRunes(m Model, s string) Model {
	var out tea.Model = m
	for _, r := range s {
		out, _ = out.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out.(Model)
}

func press(m Model, t tea.KeyType) Model {
	out, _ := m.Update(tea.KeyMsg{Type: t})
	return out.(Model)
}

func newModel(t *testing.T) Model {
	t.Helper()
	sess, err := game.NewSession(listDict{"apple", "crane"}, "apple")
	require.NoError(t, err)
	return New(sess, -1, nil, nil)
}

func TestTypingAndBackspace(t *testing.T) {
	m := newModel(t)
	m = keyRunes(m, "cranee") // sixth letter ignored
	assert.Equal(t, "crane", m.input)

	m = press(m, tea.KeyBackspace)
	assert.Equal(t, "cran", m.input)
}

func TestEnterRequiresFiveLetters(t *testing.T) {
	m := newModel(t)
	m = keyRunes(m, "cat")
	m = press(m, tea.KeyEnter)
	assert.Equal(t, "Not enough letters", m.message)
	assert.Empty(t, m.sess.History())
}

func TestEnterRejectsUnknownWord(t *testing.T) {
	m := newModel(t)
	m = keyRunes(m, "zzzzz")
	m = press(m, tea.KeyEnter)
	assert.Equal(t, "Not in word list", m.message)
	assert.Equal(t, "zzzzz", m.input) // kept for editing
	assert.Empty(t, m.sess.History())
}

func TestWinFlow(t *testing.T) {
	m := newModel(t)
	m = keyRunes(m, "crane")
	m = press(m, tea.KeyEnter)
	require.Equal(t, game.InProgress, m.sess.Status())
	assert.Empty(t, m.input)

	m = keyRunes(m, "apple")
	m = press(m, tea.KeyEnter)
	require.Equal(t, game.Won, m.sess.Status())
	assert.Contains(t, m.message, "You win!")

	// Letters after the game ends are ignored.
	m = keyRunes(m, "x")
	assert.Empty(t, m.input)
}

func TestLossRevealsAnswer(t *testing.T) {
	m := newModel(t)
	for i := 0; i < game.MaxAttempts; i++ {
		m = keyRunes(m, "crane")
		m = press(m, tea.KeyEnter)
	}
	require.Equal(t, game.Lost, m.sess.Status())
	assert.Contains(t, m.message, "APPLE")
}

func TestViewShowsBoardAndKeyboard(t *testing.T) {
	m := newModel(t)
	m = keyRunes(m, "crane")
	m = press(m, tea.KeyEnter)

	out := m.View()
	assert.Contains(t, out, "WORDLE")
	for _, r := range "QWERTYUIOP" {
		assert.Contains(t, out, string(r))
	}
	// Board shows the scored guess uppercased.
	assert.True(t, strings.Contains(out, "C") && strings.Contains(out, "R"))
}

func TestDailyTitleShowsPuzzleNumber(t *testing.T) {
	sess, err := game.NewSession(listDict{"apple"}, "apple")
	require.NoError(t, err)
	m := New(sess, 1892, nil, nil)
	assert.Contains(t, m.View(), "WORDLE #1892")
}

func TestFinishedDailyBlocksReplay(t *testing.T) {
	sess, err := game.NewSession(listDict{"apple", "crane"}, "apple")
	require.NoError(t, err)
	m := New(sess, 1892, nil, nil).MarkPlayed(daily.Result{Won: true, Guesses: 3})

	assert.Contains(t, m.message, "Come back tomorrow")

	// Guess input is ignored; nothing reaches the session.
	m = keyRunes(m, "crane")
	assert.Empty(t, m.input)
	m = press(m, tea.KeyEnter)
	assert.Empty(t, m.sess.History())
	assert.Equal(t, game.InProgress, m.sess.Status())

	// The replay notice survives in the rendered view.
	assert.Contains(t, m.View(), "Come back tomorrow")
}

func TestFinishedDailyLossMessage(t *testing.T) {
	sess, err := game.NewSession(listDict{"apple"}, "apple")
	require.NoError(t, err)
	m := New(sess, 1892, nil, nil).MarkPlayed(daily.Result{Won: false, Guesses: 6})
	assert.Contains(t, m.message, "Already played")
}

func TestQuitKeys(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
