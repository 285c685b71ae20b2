package dj

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"

	"github.com/tausch-project/tausch/bigint"
)

// Binary envelopes are length-prefixed big-endian integer fields preceded by
// the key length in bits. The private envelope carries lambda after n; a
// public-only envelope simply omits it.

// readUint32LengthPrefixed reads a 32-bit big-endian length prefix followed
// by that many bytes, matching cryptobyte.Builder.AddUint32LengthPrefixed.
func readUint32LengthPrefixed(s *cryptobyte.String, out *cryptobyte.String) bool {
	var length uint32
	if !s.ReadUint32(&length) {
		return false
	}
	v := make(cryptobyte.String, length)
	if !s.CopyBytes(v) {
		return false
	}
	*out = v
	return true
}

// MarshalBinary serializes the public key.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint32(uint32(pk.keyLen))
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(pk.N.Bytes())
	})
	return b.Bytes()
}

// UnmarshalBinary deserializes a public key produced by MarshalBinary.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	s := cryptobyte.String(data)
	keyLen, n, err := readKeyFields(&s)
	if err != nil {
		return err
	}
	if !s.Empty() {
		return fmt.Errorf("%w: trailing bytes in public key encoding", ErrInvalidParameter)
	}
	pk.N = n
	pk.keyLen = keyLen
	return nil
}

// MarshalBinary serializes the (n, lambda) pair.
func (sk *PrivateKey) MarshalBinary() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint32(uint32(sk.keyLen))
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(sk.N.Bytes())
	})
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(sk.Lambda.Bytes())
	})
	return b.Bytes()
}

// UnmarshalBinary deserializes a private key produced by MarshalBinary.
func (sk *PrivateKey) UnmarshalBinary(data []byte) error {
	s := cryptobyte.String(data)
	keyLen, n, err := readKeyFields(&s)
	if err != nil {
		return err
	}
	var lambdaBytes cryptobyte.String
	if !readUint32LengthPrefixed(&s, &lambdaBytes) || !s.Empty() {
		return fmt.Errorf("%w: malformed private key encoding", ErrInvalidParameter)
	}
	sk.N = n
	sk.keyLen = keyLen
	sk.Lambda = new(bigint.Int).SetBytes(lambdaBytes)
	return nil
}

func readKeyFields(s *cryptobyte.String) (int, *bigint.Int, error) {
	var keyLen uint32
	var nBytes cryptobyte.String
	if !s.ReadUint32(&keyLen) || !readUint32LengthPrefixed(s, &nBytes) {
		return 0, nil, fmt.Errorf("%w: malformed key encoding", ErrInvalidParameter)
	}
	n := new(bigint.Int).SetBytes(nBytes)
	if n.Sign() <= 0 || keyLen == 0 {
		return 0, nil, fmt.Errorf("%w: malformed key encoding", ErrInvalidParameter)
	}
	return int(keyLen), n, nil
}

// MarshalBinary serializes the ciphertext as (s, value, modulus). The power
// cache is derived state and is not serialized.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint32(uint32(ct.s))
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(ct.Value.Bytes())
	})
	b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes(ct.modulus.Bytes())
	})
	return b.Bytes()
}

// UnmarshalBinary deserializes a ciphertext produced by MarshalBinary. The
// cache is left disabled.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	s := cryptobyte.String(data)
	var expansion uint32
	var valueBytes, modulusBytes cryptobyte.String
	if !s.ReadUint32(&expansion) ||
		!readUint32LengthPrefixed(&s, &valueBytes) ||
		!readUint32LengthPrefixed(&s, &modulusBytes) ||
		!s.Empty() {
		return fmt.Errorf("%w: malformed ciphertext encoding", ErrInvalidCiphertext)
	}
	value := new(bigint.Int).SetBytes(valueBytes)
	modulus := new(bigint.Int).SetBytes(modulusBytes)
	out, err := NewCiphertext(value, modulus, int(expansion), false)
	if err != nil {
		return err
	}
	*ct = *out
	return nil
}
