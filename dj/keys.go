package dj

import (
	"fmt"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/primegen"
)

// PublicKey holds the modulus n = p*q. It can encrypt and evaluate the
// ciphertext homomorphisms, but not decrypt.
type PublicKey struct {
	N *bigint.Int

	keyLen int
}

// NewPublicKey returns the public key for modulus n.
func NewPublicKey(n *bigint.Int) (*PublicKey, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameter)
	}
	return &PublicKey{N: bigint.Copy(n), keyLen: n.BitLen()}, nil
}

// KeyLen returns the key length in bits, used to size the byte shapes of
// ciphertexts and plaintexts.
func (pk *PublicKey) KeyLen() int {
	return pk.keyLen
}

// PrivateKey holds the modulus n and the private exponent
// lambda = lcm(p-1, q-1). The primes themselves are discarded at generation.
type PrivateKey struct {
	PublicKey
	Lambda *bigint.Int
}

// NewPrivateKey reassembles a private key from its (n, lambda) pair.
func NewPrivateKey(n, lambda *bigint.Int) (*PrivateKey, error) {
	pk, err := NewPublicKey(n)
	if err != nil {
		return nil, err
	}
	if lambda == nil || lambda.Sign() <= 0 {
		return nil, fmt.Errorf("%w: lambda must be positive", ErrInvalidParameter)
	}
	return &PrivateKey{PublicKey: *pk, Lambda: bigint.Copy(lambda)}, nil
}

// Public returns the public part of the key.
func (sk *PrivateKey) Public() *PublicKey {
	pk := sk.PublicKey
	pk.N = bigint.Copy(sk.N)
	return &pk
}

// KeyGenerator generates Damgård–Jurik keypairs.
type KeyGenerator struct {
	primes primegen.Generator
}

// NewKeyGenerator returns a KeyGenerator using the default prime generator.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{primes: primegen.Default{}}
}

// NewKeyGeneratorWithPrimes returns a KeyGenerator using the given prime
// generator.
func NewKeyGeneratorWithPrimes(gen primegen.Generator) *KeyGenerator {
	return &KeyGenerator{primes: gen}
}

// GenerateKey generates a fresh keypair of approximately keylen bits drawn
// from rng. The prime p is one bit longer than q so that the modulus has its
// top bits set with high probability; floor(log2 n) lands in
// {keylen-1, keylen, keylen+1}.
func (kg *KeyGenerator) GenerateKey(keylen int, rng primegen.Source) (*PrivateKey, error) {
	if keylen < 4 {
		return nil, fmt.Errorf("%w: keylen %d is too small", ErrInvalidParameter, keylen)
	}
	half := (keylen + 1) / 2
	p, err := kg.primes.GenPrime(half+1, rng)
	if err != nil {
		return nil, err
	}
	q, err := kg.primes.GenPrime(half, rng)
	if err != nil {
		return nil, err
	}
	for p.EqualTo(q) {
		if q, err = kg.primes.GenPrime(half, rng); err != nil {
			return nil, err
		}
	}

	n := new(bigint.Int).Mul(p, q)
	one := bigint.NewInt(1)
	lambda := new(bigint.Int).LCM(new(bigint.Int).Sub(p, one), new(bigint.Int).Sub(q, one))

	sk, err := NewPrivateKey(n, lambda)
	if err != nil {
		return nil, err
	}
	sk.keyLen = keylen
	return sk, nil
}
