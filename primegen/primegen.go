// Package primegen generates the odd primes consumed by Damgård–Jurik key
// generation. The Generator interface lets key generation be driven by any
// bit source, in particular a deterministic prng.KeccakPRG for reproducible
// keys.
package primegen

import (
	"errors"
	"fmt"

	"github.com/tausch-project/tausch/bigint"
)

// ErrInvalidParameter is returned for bit lengths below 2.
var ErrInvalidParameter = errors.New("primegen: bit length must be at least 2")

// Source is the bit-drawing subset of prng.KeccakPRG.
type Source interface {
	GetRandBits(n int) *bigint.Int
}

// Generator produces odd primes of approximately the requested bit length.
type Generator interface {
	GenPrime(bits int, rng Source) (*bigint.Int, error)
}

// Default samples candidates from rng with the top and bottom bits forced
// and tests them with a Miller-Rabin based probable-prime test.
type Default struct {
	// Rounds is the number of Miller-Rabin rounds, 64 if zero.
	Rounds int
}

// GenPrime returns an odd probable prime of exactly bits bits.
func (g Default) GenPrime(bits int, rng Source) (*bigint.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParameter, bits)
	}
	rounds := g.Rounds
	if rounds == 0 {
		rounds = 64
	}
	one := bigint.NewInt(1)
	topBit := new(bigint.Int).Lsh(one, uint(bits-1))
	for {
		candidate := rng.GetRandBits(bits)
		candidate.Or(candidate, topBit)
		candidate.Or(candidate, one)
		if candidate.IsPrime(rounds) {
			return candidate, nil
		}
	}
}
