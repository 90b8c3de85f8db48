// internal/tui/model.go
//
// The bubbletea model for the terminal game: a 6x5 guess grid, an
// on-screen keyboard colored by the session's hints, a message line, and
// a stats panel once the game ends. Pure presentation; all rules live in
// internal/game.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"wordle/internal/daily"
	"wordle/internal/game"
	"wordle/internal/share"
	"wordle/internal/stats"
)

// keyboardRows is the QWERTY layout for the hint keyboard.
var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// Model drives one terminal game.
type Model struct {
	sess   *game.Session
	puzzle int // daily puzzle number, -1 for random games

	statsStore *stats.Store // nil disables persistence
	dailyStore *daily.Store // nil outside daily mode
	date       string
	start      time.Time

	input    string
	message  string
	summary  *stats.Summary
	recorded bool
	played   bool // today's daily already has a recorded result
	width    int
	height   int
}

// New builds a model for an already-created session. puzzle is the daily
// puzzle number or -1 for a random game. Either store may be nil.
func New(sess *game.Session, puzzle int, statsStore *stats.Store, dailyStore *daily.Store) Model {
	return Model{
		sess:       sess,
		puzzle:     puzzle,
		statsStore: statsStore,
		dailyStore: dailyStore,
		date:       daily.DateKey(time.Now()),
		start:      time.Now(),
	}
}

// MarkPlayed puts the model into the replay-blocked state for a daily
// puzzle the player already finished in an earlier run. Guess input is
// ignored and no second result is ever recorded for the day.
func (m Model) MarkPlayed(r daily.Result) Model {
	m.played = true
	m.recorded = true
	if r.Won {
		m.message = fmt.Sprintf("Already solved today's puzzle in %d/%d. Come back tomorrow!",
			r.Guesses, game.MaxAttempts)
	} else {
		m.message = "Already played today's puzzle. Come back tomorrow!"
	}
	if m.statsStore != nil {
		if sum, err := m.statsStore.Summarize(context.Background(), stats.LocalPlayer); err == nil {
			m.summary = &sum
		} else {
			log.Warn().Err(err).Msg("summarize stats")
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.played || m.sess.Status().Finished() {
			return m.updateFinished(msg), nil
		}
		return m.updatePlaying(msg), nil
	}
	return m, nil
}

// updatePlaying handles keys while the game is live.
func (m Model) updatePlaying(msg tea.KeyMsg) Model {
	m.message = ""
	switch msg.String() {
	case "enter":
		return m.submit()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m
	}
	if s := msg.String(); len(s) == 1 && isLetter(s[0]) && len(m.input) < game.WordLength {
		m.input += strings.ToLower(s)
	}
	return m
}

// updateFinished handles keys after the game ended.
func (m Model) updateFinished(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "c":
		text, err := share.Render(m.sess, m.puzzle)
		if err != nil {
			return m
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.message = "Clipboard unavailable."
			return m
		}
		m.message = "Copied to the clipboard."
	}
	return m
}

// submit plays the typed word through the session.
func (m Model) submit() Model {
	if len(m.input) < game.WordLength {
		m.message = "Not enough letters"
		return m
	}
	_, err := m.sess.Submit(m.input)
	switch {
	case errors.Is(err, game.ErrInvalidWord):
		m.message = "Not in word list"
		return m
	case err != nil:
		m.message = err.Error()
		return m
	}
	m.input = ""

	if m.sess.Status().Finished() {
		m.finish()
		if m.sess.Status() == game.Won {
			m.message = "You win! Press 'c' to copy the result."
		} else {
			m.message = fmt.Sprintf("You lose! The answer was %s.\nPress 'c' to copy the result.",
				strings.ToUpper(m.sess.Reveal()))
		}
	}
	return m
}

// finish records the result once and loads the stats summary.
func (m *Model) finish() {
	if m.recorded {
		return
	}
	m.recorded = true

	won := m.sess.Status() == game.Won
	guesses := len(m.sess.History())
	ctx := context.Background()

	if m.statsStore != nil {
		if err := m.statsStore.Record(ctx, stats.LocalPlayer, won, guesses); err != nil {
			log.Warn().Err(err).Msg("record result")
		}
		if sum, err := m.statsStore.Summarize(ctx, stats.LocalPlayer); err == nil {
			m.summary = &sum
		} else {
			log.Warn().Err(err).Msg("summarize stats")
		}
	}
	if m.dailyStore != nil && m.puzzle >= 0 {
		err := m.dailyStore.InsertResult(ctx, daily.Result{
			PlayerID:  stats.LocalPlayer,
			Date:      m.date,
			Puzzle:    m.puzzle,
			Won:       won,
			Guesses:   guesses,
			ElapsedMs: int(time.Since(m.start).Milliseconds()),
		})
		if err != nil {
			log.Warn().Err(err).Msg("record daily result")
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "WORDLE"
	if m.puzzle >= 0 {
		title = fmt.Sprintf("WORDLE #%d", m.puzzle)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.viewGrid())
	b.WriteString("\n\n")
	b.WriteString(m.viewKeyboard())

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
	}
	if m.summary != nil {
		b.WriteString("\n")
		b.WriteString(m.viewStats())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type a word · enter to guess · esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// viewGrid renders scored rows, the row being typed, and empty rows.
func (m Model) viewGrid() string {
	rows := make([]string, 0, game.MaxAttempts)
	history := m.sess.History()

	for _, g := range history {
		cells := make([]string, game.WordLength)
		for i := 0; i < game.WordLength; i++ {
			cells[i] = tileStyle(g.Marks[i]).Render(strings.ToUpper(string(g.Word[i])))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	if !m.played && !m.sess.Status().Finished() && len(rows) < game.MaxAttempts {
		cells := make([]string, game.WordLength)
		for i := 0; i < game.WordLength; i++ {
			ch := " "
			if i < len(m.input) {
				ch = strings.ToUpper(string(m.input[i]))
			}
			cells[i] = tileEmpty.Render(ch)
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	for len(rows) < game.MaxAttempts {
		cells := make([]string, game.WordLength)
		for i := range cells {
			cells[i] = tileEmpty.Render(" ")
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

// viewKeyboard renders the QWERTY hint keyboard.
func (m Model) viewKeyboard() string {
	lines := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for _, r := range row {
			keys = append(keys, keyStyle(m.sess.HintFor(r)).Render(strings.ToUpper(string(r))))
		}
		line := strings.Join(keys, " ")
		if i > 0 {
			line = strings.Repeat(" ", i*2) + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// viewStats renders the post-game statistics panel.
func (m Model) viewStats() string {
	s := m.summary
	var b strings.Builder
	fmt.Fprintf(&b, "Played %d · Win %.0f%% · Streak %d · Max %d\n",
		s.Played, s.WinRate(), s.CurrentStreak, s.MaxStreak)

	most := 0
	for _, n := range s.Distribution {
		if n > most {
			most = n
		}
	}
	for i, n := range s.Distribution {
		bar := ""
		if most > 0 {
			bar = strings.Repeat("█", n*20/most)
		}
		fmt.Fprintf(&b, "%d %s %d", i+1, bar, n)
		if i < len(s.Distribution)-1 {
			b.WriteString("\n")
		}
	}
	return panelStyle.Render(b.String())
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// Run starts the program in the alternate screen and blocks until exit.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var _ tea.Model = Model{}
