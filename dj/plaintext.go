package dj

import (
	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/codec"
)

// Plaintext wraps an integer message. Byte strings are interpreted as
// little-endian integers.
type Plaintext struct {
	Value *bigint.Int
}

// NewPlaintext returns the plaintext wrapping v.
func NewPlaintext(v *bigint.Int) *Plaintext {
	return &Plaintext{Value: bigint.Copy(v)}
}

// NewPlaintextFromInt64 returns the plaintext wrapping v.
func NewPlaintextFromInt64(v int64) *Plaintext {
	return &Plaintext{Value: bigint.NewInt(v)}
}

// NewPlaintextFromBytes interprets b as a little-endian integer.
func NewPlaintextFromBytes(b []byte) *Plaintext {
	return &Plaintext{Value: codec.BytesToInt(b)}
}

// Int returns the wrapped integer.
func (pt *Plaintext) Int() *bigint.Int {
	return pt.Value
}

// Bytes returns the little-endian encoding of the plaintext in exactly
// length bytes.
func (pt *Plaintext) Bytes(length int) ([]byte, error) {
	return codec.IntToBytes(pt.Value, length)
}

// Equal reports whether two plaintexts wrap the same integer.
func (pt *Plaintext) Equal(other *Plaintext) bool {
	return pt.Value.EqualTo(other.Value)
}

func (pt *Plaintext) String() string {
	return "Plaintext(" + pt.Value.String() + ")"
}
