package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the board seed for a date: HMAC-SHA256(salt, YYYY-MM-DD).
// Everyone playing the same date with the same salt gets the same board.
func Seed(date time.Time, salt string) [32]byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
