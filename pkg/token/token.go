package token

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// PublishIDLength matches the short share ids the viewer route expects.
const PublishIDLength = 8

// New returns a random lowercase alphanumeric token of length n. The result
// is URL-safe and usable as a route segment without escaping. It is a
// convenience identifier, not a secret.
func New(n int) string {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// nothing sensible to degrade to here.
			panic("token: rand source unavailable: " + err.Error())
		}
		buf[i] = alphabet[v.Int64()]
	}
	return string(buf)
}

// NewPublishID returns a token suitable for use as a public portfolio id.
func NewPublishID() string {
	return New(PublishIDLength)
}
