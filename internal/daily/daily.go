// internal/daily/daily.go
//
// Daily puzzle arithmetic. Everyone playing on the same UTC date gets the
// same word and the same puzzle number.
//
//   - PuzzleNumber counts days since the original game's epoch
//     (2021-06-19) and feeds the share header.
//   - WordIndex derives the day's answer index from HMAC(salt, date), so
//     the sequence can't be read straight out of the word list.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// epoch is the date of puzzle #0.
var epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PuzzleNumber returns the sequential puzzle number for t's UTC date.
func PuzzleNumber(t time.Time) int {
	y, m, d := t.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(epoch).Hours() / 24)
}

// WordIndex returns a deterministic answer index for t's date using
// HMAC-SHA256(salt, YYYY-MM-DD) mod answersLen.
func WordIndex(t time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}
