// Package batchid generates short human-readable batch identifiers:
// a fixed 'B' prefix plus six random uppercase alphanumerics, e.g.
// "B7K2Q9X". Collision probability over a session's tens-to-hundreds
// of batches is negligible; callers that want a hard guarantee retry
// against the ids they already hold.
package batchid

import (
	"math/rand"
	"regexp"
)

const (
	Prefix    = "B"
	suffixLen = 6
	alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var pattern = regexp.MustCompile(`^B[0-9A-Z]{6}$`)

// New returns a fresh batch identifier.
func New() string {
	buf := make([]byte, 0, 1+suffixLen)
	buf = append(buf, Prefix...)
	for i := 0; i < suffixLen; i++ {
		buf = append(buf, alphabet[rand.Intn(len(alphabet))])
	}
	return string(buf)
}

// Valid reports whether s has the batch identifier shape.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
