package dj

import (
	"fmt"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/codec"
)

// Decrypt recovers the plaintext of ct. The expansion parameter is taken
// from the ciphertext itself.
func (sk *PrivateKey) Decrypt(ct *Ciphertext) (*Plaintext, error) {
	i, err := sk.decryptValue(ct.Value, ct.s)
	if err != nil {
		return nil, err
	}
	return &Plaintext{Value: i}, nil
}

// DecryptInt recovers the plaintext integer of a raw ciphertext integer.
// The expansion parameter is derived as the unique s with n^s <= c < n^(s+1).
func (sk *PrivateKey) DecryptInt(c *bigint.Int) (*bigint.Int, error) {
	s, err := sk.deriveExpansion(c)
	if err != nil {
		return nil, err
	}
	return sk.decryptValue(c, s)
}

// DecryptBytes recovers a little-endian byte plaintext, padded to
// floor(keylen*s/8) bytes. The expansion parameter is derived from the
// ciphertext length.
func (sk *PrivateKey) DecryptBytes(ct []byte) ([]byte, error) {
	s := (8*len(ct)+sk.keyLen-1)/sk.keyLen - 1
	if s <= 0 {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrInvalidCiphertext)
	}
	i, err := sk.decryptValue(codec.BytesToInt(ct), s)
	if err != nil {
		return nil, err
	}
	return codec.IntToBytes(i, sk.keyLen*s/8)
}

// deriveExpansion searches for the unique s with n^s <= c < n^(s+1), seeding
// the search with the bit-length quotient rather than a floating point
// logarithm, which misbehaves near power boundaries.
func (sk *PrivateKey) deriveExpansion(c *bigint.Int) (int, error) {
	if c.Sign() <= 0 {
		return 0, fmt.Errorf("%w: value must be positive", ErrInvalidCiphertext)
	}
	s := (c.BitLen() - 1) / sk.N.BitLen()
	if s < 1 {
		s = 1
	}
	power := sk.pow(s)
	for power.Compare(c) > 0 && s > 1 {
		s--
		power.Div(power, sk.N)
	}
	next := new(bigint.Int).Mul(power, sk.N)
	for next.Compare(c) <= 0 {
		s++
		power = next
		next = new(bigint.Int).Mul(power, sk.N)
	}
	if power.Compare(c) > 0 {
		// c < n: no s >= 1 satisfies n^s <= c
		return 0, fmt.Errorf("%w: value below n", ErrInvalidCiphertext)
	}
	return s, nil
}

// decryptValue recovers i in [0, n^s) from c in [0, n^(s+1)) using the
// Damgård–Jurik recurrence: the plaintext is refined modulo n^j for
// j = 1..s, each stage subtracting the binomial correction terms
// falling_factorial(i, k)/k! * n^(k-1) for k = 2..j.
func (sk *PrivateKey) decryptValue(c *bigint.Int, s int) (*bigint.Int, error) {
	if sk.Lambda == nil {
		return nil, ErrNoPrivateKey
	}
	if s <= 0 {
		return nil, fmt.Errorf("%w: expansion parameter must be positive, got %d", ErrInvalidCiphertext, s)
	}
	ns := sk.pow(s)
	m := new(bigint.Int).Mul(ns, sk.N)
	if c.Sign() < 0 || c.Compare(m) >= 0 {
		return nil, fmt.Errorf("%w: value outside [0, n^(s+1))", ErrInvalidCiphertext)
	}

	// d = lambda * (lambda^-1 mod n^s) satisfies d = 1 (mod n^s), d = 0 (mod lambda)
	d, err := new(bigint.Int).Invert(sk.Lambda, ns)
	if err != nil {
		return nil, err
	}
	d.Mul(d, sk.Lambda)

	a := new(bigint.Int).Exp(c, d, m)

	one := bigint.NewInt(1)
	i := bigint.NewInt(0)
	nj := bigint.NewInt(1)
	for j := 1; j <= s; j++ {
		nj.Mul(nj, sk.N)
		nj1 := new(bigint.Int).Mul(nj, sk.N)

		// t1 = L(a mod n^(j+1)) = ((a mod n^(j+1)) - 1) / n, an exact division
		t1 := new(bigint.Int).Mod(a, nj1)
		t1.Sub(t1, one)
		t1.Div(t1, sk.N)

		// t2 accumulates the falling factorial i*(i-1)*...*(i-k+1) mod n^j
		t2 := bigint.Copy(i)
		ii := bigint.Copy(i)
		kfac := bigint.NewInt(1)
		nk := bigint.NewInt(1)
		for k := 2; k <= j; k++ {
			kfac.Mul(kfac, bigint.NewInt(int64(k)))
			ii.Sub(ii, one)
			t2.Mul(t2, ii)
			t2.Mod(t2, nj)
			nk.Mul(nk, sk.N)

			// k! is invertible mod n^j because k is far below both primes
			inv, err := new(bigint.Int).Invert(kfac, nj)
			if err != nil {
				return nil, err
			}
			corr := new(bigint.Int).Mul(t2, nk)
			corr.Mul(corr, inv)
			t1.Sub(t1, corr)
			t1.Mod(t1, nj)
		}
		i = t1
	}
	return i, nil
}
