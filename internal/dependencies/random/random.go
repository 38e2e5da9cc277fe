package random

import (
	"crypto/rand"
	"math/big"
)

// Random generates the unguessable parts of session tokens
type Random interface {
	// String returns length characters drawn uniformly from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from crypto/rand
type CryptoRandom struct{}

// New creates a CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic("random: crypto source failed: " + err.Error())
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}
