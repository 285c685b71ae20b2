// Package codec converts between unbounded non-negative integers and
// octet strings. Everything is the one true endianness, little endian.
package codec

import (
	"errors"

	"github.com/tausch-project/tausch/bigint"
)

// ErrOverflow is returned when an integer does not fit in the requested
// length, or is negative.
var ErrOverflow = errors.New("codec: integer too large to be represented in desired length")

// IntToBytes converts i to an octet string of exactly length bytes,
// least-significant byte first.
func IntToBytes(i *bigint.Int, length int) ([]byte, error) {
	if i.Sign() < 0 || i.BitLen() > 8*length {
		return nil, ErrOverflow
	}
	b := make([]byte, length)
	i.Value.FillBytes(b)
	reverse(b)
	return b, nil
}

// IntToBytesShortest converts i to the shortest octet string whose high
// byte is non-zero, least-significant byte first. Zero encodes to the
// empty string.
func IntToBytesShortest(i *bigint.Int) ([]byte, error) {
	if i.Sign() < 0 {
		return nil, ErrOverflow
	}
	return IntToBytes(i, (i.BitLen()+7)/8)
}

// BytesToInt converts a little-endian octet string to a non-negative integer.
func BytesToInt(b []byte) *bigint.Int {
	be := make([]byte, len(b))
	copy(be, b)
	reverse(be)
	return new(bigint.Int).SetBytes(be)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
