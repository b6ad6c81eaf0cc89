package game

import (
	"crypto/rand"
	"math/big"
)

// Source supplies uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// CryptoSource draws from crypto/rand.
var CryptoSource Source = cryptoSource{}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("game: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}
