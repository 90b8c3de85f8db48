// internal/share/share.go
//
// Share-grid rendering for finished games: the familiar emoji block text
// people paste into chats. One row per guess, a header with the puzzle
// number and attempts used ("X" on a loss).

package share

import (
	"fmt"
	"strings"

	"wordle/internal/game"
)

// blocks maps a letter status to its share glyph.
var blocks = map[game.LetterStatus]string{
	game.StatusCorrect: "\U0001F7E9", // green square
	game.StatusPresent: "\U0001F7E8", // yellow square
	game.StatusAbsent:  "⬛",     // black square
}

// Render produces the shareable text for a finished session. puzzle is
// the daily puzzle number; pass a negative value for random games to omit
// it. Returns game.ErrNotFinished if the session is still in progress.
func Render(s *game.Session, puzzle int) (string, error) {
	if !s.Status().Finished() {
		return "", game.ErrNotFinished
	}

	history := s.History()
	tries := "X"
	if s.Status() == game.Won {
		tries = fmt.Sprintf("%d", len(history))
	}

	var b strings.Builder
	if puzzle >= 0 {
		fmt.Fprintf(&b, "Wordle %d %s/%d\n", puzzle, tries, game.MaxAttempts)
	} else {
		fmt.Fprintf(&b, "Wordle %s/%d\n", tries, game.MaxAttempts)
	}
	for _, g := range history {
		b.WriteString("\n")
		for _, m := range g.Marks {
			b.WriteString(blocks[m])
		}
	}
	return b.String(), nil
}
