// Package dj implements the Damgård–Jurik generalized Paillier cryptosystem.
//
// For a modulus n = p*q and an expansion parameter s >= 1, plaintexts live in
// Z/n^s Z and ciphertexts in Z/n^(s+1) Z. The scheme is additively
// homomorphic: multiplying ciphertexts adds their plaintexts, and raising a
// ciphertext to an integer power multiplies its plaintext by that integer.
package dj

import (
	"errors"

	"github.com/tausch-project/tausch/bigint"
)

var (
	// ErrInvalidParameter is returned for key lengths below 4 bits, negative
	// expansion parameters, and malformed key material.
	ErrInvalidParameter = errors.New("dj: invalid parameter")

	// ErrMessageTooLarge is returned when a plaintext does not fit in n^s.
	ErrMessageTooLarge = errors.New("dj: message value is too large for the given value of s")

	// ErrInvalidCiphertext is returned when a ciphertext value lies outside
	// its ciphertext space, or no valid expansion parameter can be derived.
	ErrInvalidCiphertext = errors.New("dj: invalid ciphertext")

	// ErrNoPrivateKey is returned when decrypting with a public-only key.
	ErrNoPrivateKey = errors.New("dj: this key has no private material for decryption")

	// ErrKeyMismatch is returned when combining ciphertexts from different
	// ciphertext spaces.
	ErrKeyMismatch = errors.New("dj: ciphertexts belong to different keys")

	// ErrUnsupportedOperation is returned for division, bitwise and shift
	// operations on ciphertexts, which have no homomorphic counterpart.
	ErrUnsupportedOperation = errors.New("dj: operation not supported on ciphertexts")
)

// BitSource draws uniform random bits, typically a *prng.KeccakPRG.
type BitSource interface {
	GetRandBits(n int) *bigint.Int
}
