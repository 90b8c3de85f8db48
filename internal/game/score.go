// internal/game/score.go
//
// Guess scoring. Score implements the classic two-pass Wordle algorithm,
// which is the only correct way to handle repeated letters in either the
// secret or the guess.

package game

// Score evaluates guess against secret and returns one status per guess
// position. Both words must already be validated: same length, lowercase
// a-z only.
//
// Pass 1: mark exact matches Correct and count the secret's remaining
// (non-matched) letters.
//
// Pass 2: for each position not marked Correct, mark Present if the
// remaining count for that letter is still positive (and consume one),
// otherwise Absent. Earlier positions consume counts first, so the
// left-most duplicate wins Present.
func Score(secret, guess string) []LetterStatus {
	n := len(guess)
	res := make([]LetterStatus, n)

	// Remaining counts for secret letters not consumed by exact matches.
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = StatusCorrect
		} else if k := int(secret[i] - 'a'); k >= 0 && k < 26 {
			counts[k]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == StatusCorrect {
			continue
		}
		j := int(guess[i] - 'a')
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = StatusPresent
			counts[j]--
		} else {
			res[i] = StatusAbsent
		}
	}
	return res
}

// allCorrect reports whether every status is Correct.
func allCorrect(marks []LetterStatus) bool {
	for _, m := range marks {
		if m != StatusCorrect {
			return false
		}
	}
	return true
}
