package dj

import (
	"fmt"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/codec"
)

// AutoExpansion selects the smallest s such that the message fits in n^s.
const AutoExpansion = 0

// Encrypt encrypts pt at expansion s, drawing randomness from rng. Pass
// AutoExpansion to pick the smallest s that fits the message. The returned
// ciphertext has its power cache enabled.
func (pk *PublicKey) Encrypt(pt *Plaintext, s int, rng BitSource) (*Ciphertext, error) {
	c, s, err := pk.encryptValue(pt.Value, s, rng)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{
		Value:        c,
		modulus:      pk.pow(s + 1),
		s:            s,
		cacheEnabled: true,
	}, nil
}

// EncryptInt encrypts a raw integer and returns the raw ciphertext integer.
func (pk *PublicKey) EncryptInt(i *bigint.Int, s int, rng BitSource) (*bigint.Int, error) {
	c, _, err := pk.encryptValue(i, s, rng)
	return c, err
}

// EncryptBytes encrypts a little-endian byte message and returns the
// ciphertext as ceil(keylen*(s+1)/8) little-endian bytes. Pass
// AutoExpansion to derive s from the message length.
func (pk *PublicKey) EncryptBytes(msg []byte, s int, rng BitSource) ([]byte, error) {
	if s == AutoExpansion {
		s = (8*len(msg) + pk.keyLen - 1) / pk.keyLen
		if s == 0 {
			s = 1
		}
	}
	c, s, err := pk.encryptValue(codec.BytesToInt(msg), s, rng)
	if err != nil {
		return nil, err
	}
	return codec.IntToBytes(c, (pk.keyLen*(s+1)+7)/8)
}

// encryptValue computes c = (1+n)^i * r^(n^s) mod n^(s+1) with r drawn
// uniformly from [1, n^(s+1)) by rejection sampling.
func (pk *PublicKey) encryptValue(i *bigint.Int, s int, rng BitSource) (*bigint.Int, int, error) {
	if s == AutoExpansion {
		s = 1
		abs := new(bigint.Int).SetBigInt(i)
		abs.Value.Abs(&abs.Value)
		for pk.pow(s).Compare(abs) <= 0 {
			s++
		}
	} else if s < 0 {
		return nil, 0, fmt.Errorf("%w: expansion parameter must be positive, got %d", ErrInvalidParameter, s)
	}

	ns := pk.pow(s)
	m := new(bigint.Int).Mul(ns, pk.N)

	// negative messages encrypt as their representative mod n^s
	if i.Sign() < 0 {
		i = new(bigint.Int).Mod(i, ns)
	} else if i.Compare(ns) >= 0 {
		return nil, 0, ErrMessageTooLarge
	}

	r := pk.sampleUnit(m, s, rng)

	c := new(bigint.Int).Exp(new(bigint.Int).Add(pk.N, bigint.NewInt(1)), i, m)
	c.Mul(c, new(bigint.Int).Exp(r, ns, m))
	return c.Mod(c, m), s, nil
}

// sampleUnit draws keylen*(s+1) bits and rejects values outside [1, m).
func (pk *PublicKey) sampleUnit(m *bigint.Int, s int, rng BitSource) *bigint.Int {
	for {
		r := rng.GetRandBits(pk.keyLen * (s + 1))
		if r.Sign() > 0 && r.Compare(m) < 0 {
			return r
		}
	}
}

// pow returns n^e without reduction.
func (pk *PublicKey) pow(e int) *bigint.Int {
	out := bigint.NewInt(1)
	for ; e > 0; e-- {
		out.Mul(out, pk.N)
	}
	return out
}
