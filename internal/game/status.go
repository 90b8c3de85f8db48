// internal/game/status.go
//
// Closed enums for the game engine.
// Defines:
//   - LetterStatus: per-letter result of scoring one guess.
//   - SessionStatus: lifecycle of a single game session.
//
// LetterStatus values are ordered Unseen < Absent < Present < Correct so
// keyboard hints can merge with a plain max.

package game

// LetterStatus classifies one guessed letter against the secret.
type LetterStatus int

const (
	// StatusUnseen means the letter has not appeared in any guess yet.
	// Only meaningful for keyboard hints; scoring never produces it.
	StatusUnseen LetterStatus = iota
	// StatusAbsent means the letter does not occur in the secret, or all
	// of its occurrences are already consumed by better matches.
	StatusAbsent
	// StatusPresent means the letter occurs in the secret at a different
	// position.
	StatusPresent
	// StatusCorrect means the letter matches the secret at this position.
	StatusCorrect
)

// String returns the wire/display name of the status.
func (s LetterStatus) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusPresent:
		return "present"
	case StatusCorrect:
		return "correct"
	default:
		return "unseen"
	}
}

// MarshalJSON encodes the status as its string name.
func (s LetterStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// SessionStatus is the lifecycle state of a Session.
type SessionStatus int

const (
	InProgress SessionStatus = iota
	Won
	Lost
)

// String returns the wire/display name of the session state.
func (s SessionStatus) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in_progress"
	}
}

// MarshalJSON encodes the session state as its string name.
func (s SessionStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Finished reports whether the state is terminal.
func (s SessionStatus) Finished() bool { return s == Won || s == Lost }
