// internal/tui/styles.go
//
// lipgloss styling for the terminal game. Tile colors follow the original
// game's palette: green for correct, mustard for present, dark grey for
// absent.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"wordle/internal/game"
)

var (
	colorCorrect = lipgloss.Color("#538d4e")
	colorPresent = lipgloss.Color("#b59f3b")
	colorAbsent  = lipgloss.Color("#3a3a3c")
	colorIdle    = lipgloss.Color("#828282")
	colorEmpty   = lipgloss.Color("#121212")
	colorText    = lipgloss.Color("#ffffff")

	tileBase = lipgloss.NewStyle().Bold(true).Foreground(colorText).Padding(0, 1)

	tileCorrect = tileBase.Background(colorCorrect)
	tilePresent = tileBase.Background(colorPresent)
	tileAbsent  = tileBase.Background(colorAbsent)
	tileEmpty   = tileBase.Background(colorEmpty)
	tileIdle    = tileBase.Background(colorIdle)

	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d7dadc")).MarginTop(1)
	helpStyle    = lipgloss.NewStyle().Foreground(colorIdle).MarginTop(1)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAbsent).
			Padding(0, 1).
			MarginTop(1)
)

// tileStyle picks the board style for a scored letter.
func tileStyle(s game.LetterStatus) lipgloss.Style {
	switch s {
	case game.StatusCorrect:
		return tileCorrect
	case game.StatusPresent:
		return tilePresent
	case game.StatusAbsent:
		return tileAbsent
	default:
		return tileEmpty
	}
}

// keyStyle picks the on-screen keyboard style for a letter hint. Unseen
// letters render in the idle grey so they stand apart from absent ones.
func keyStyle(s game.LetterStatus) lipgloss.Style {
	if s == game.StatusUnseen {
		return tileIdle
	}
	return tileStyle(s)
}
