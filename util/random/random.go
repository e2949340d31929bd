// Package random generates random strings for secrets and one-off passwords.
package random

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumeric = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// no 0/O, 1/l/I so the value can be read out over the phone
	readable = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"
)

// Seq generates a random alphanumeric string of length n.
func Seq(n int) string {
	return fromAlphabet(alphanumeric, n)
}

// Password generates a random password of length n without ambiguous characters.
func Password(n int) string {
	return fromAlphabet(readable, n)
}

func fromAlphabet(alphabet string, n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}
