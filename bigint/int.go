// Package bigint provides a uniform arbitrary-precision integer layer for the
// rest of the module, built using Go's built-in "math/big.Int".
package bigint

import (
	"errors"
	"math/big"
)

// ErrNoInverse is returned by Invert when the operand is not invertible,
// that is when gcd(a, m) != 1.
var ErrNoInverse = errors.New("bigint: modular inverse does not exist")

// Int is a generic implementation of natural arithmetic on integers.
type Int struct {
	Value big.Int // Integer value, theoretically ranging from -infinite to +infinite
}

// NewInt creates a new Int with a given int64 value.
func NewInt(v int64) *Int {
	i := new(Int)
	i.Value.SetInt64(v)
	return i
}

// NewUint creates a new Int with a given uint64 value.
func NewUint(v uint64) *Int {
	i := new(Int)
	i.Value.SetUint64(v)
	return i
}

// NewIntFromString creates a new Int from a string.
// A prefix of “0x” or “0X” selects base 16;
// the “0” prefix selects base 8, and
// a “0b” or “0B” prefix selects base 2.
// Otherwise the selected base is 10.
func NewIntFromString(s string) *Int {
	i := new(Int)
	i.Value.SetString(s, 0)
	return i
}

// NewIntFromBig creates a new Int with the value of v.
func NewIntFromBig(v *big.Int) *Int {
	i := new(Int)
	i.Value.Set(v)
	return i
}

// Copy creates a new Int which is a copy of the input Int.
func Copy(v *Int) *Int {
	i := new(Int)
	i.Value.Set(&v.Value)
	return i
}

// String returns the value of Int i in string
func (i *Int) String() string {
	return i.Value.String()
}

// SetInt sets Int i with value v
func (i *Int) SetInt(v int64) *Int {
	i.Value.SetInt64(v)
	return i
}

// SetBigInt sets Int i with the value of v
func (i *Int) SetBigInt(v *Int) *Int {
	i.Value.Set(&v.Value)
	return i
}

// SetBytes sets Int i from a big-endian byte slice.
func (i *Int) SetBytes(b []byte) *Int {
	i.Value.SetBytes(b)
	return i
}

// IsPrime returns true if the target is probably prime, else false.
func (i *Int) IsPrime(n int) bool {
	return i.Value.ProbablyPrime(n)
}

// Add sets the target i to a + b.
func (i *Int) Add(a, b *Int) *Int {
	i.Value.Add(&a.Value, &b.Value)
	return i
}

// Sub sets the target i to a - b.
func (i *Int) Sub(a, b *Int) *Int {
	i.Value.Sub(&a.Value, &b.Value)
	return i
}

// Mul sets the target i to a * b.
func (i *Int) Mul(a, b *Int) *Int {
	i.Value.Mul(&a.Value, &b.Value)
	return i
}

// Div sets the target i to a / b, truncated toward zero.
func (i *Int) Div(a, b *Int) *Int {
	i.Value.Quo(&a.Value, &b.Value)
	return i
}

// DivMod sets the target i to floor(a / b) and r to a mod b, with r in [0, b).
func (i *Int) DivMod(a, b, r *Int) *Int {
	i.Value.DivMod(&a.Value, &b.Value, &r.Value)
	return i
}

// Mod sets the target i to a mod m, with the result in [0, m).
func (i *Int) Mod(a, m *Int) *Int {
	i.Value.Mod(&a.Value, &m.Value)
	return i
}

// Exp sets the target i to a^b mod m. A negative base is reduced mod m
// first; negative exponents are not supported.
func (i *Int) Exp(a, b, m *Int) *Int {
	if a.Value.Sign() < 0 {
		var t big.Int
		t.Mod(&a.Value, &m.Value)
		i.Value.Exp(&t, &b.Value, &m.Value)
		return i
	}
	i.Value.Exp(&a.Value, &b.Value, &m.Value)
	return i
}

// Invert sets the target i to a^-1 mod m. It returns ErrNoInverse
// iff gcd(a, m) != 1.
func (i *Int) Invert(a, m *Int) (*Int, error) {
	if i.Value.ModInverse(&a.Value, &m.Value) == nil {
		return nil, ErrNoInverse
	}
	return i, nil
}

// GCD sets the target i to the greatest common divisor of a and b.
func (i *Int) GCD(a, b *Int) *Int {
	i.Value.GCD(nil, nil, &a.Value, &b.Value)
	return i
}

// LCM sets the target i to the least common multiple of a and b.
func (i *Int) LCM(a, b *Int) *Int {
	var g big.Int
	g.GCD(nil, nil, &a.Value, &b.Value)
	i.Value.Div(&a.Value, &g)
	i.Value.Mul(&i.Value, &b.Value)
	return i
}

// Neg sets the target i to -a mod m.
func (i *Int) Neg(a, m *Int) *Int {
	i.Value.Neg(&a.Value)
	i.Mod(i, m)
	return i
}

// Lsh sets the target i to a << n.
func (i *Int) Lsh(a *Int, n uint) *Int {
	i.Value.Lsh(&a.Value, n)
	return i
}

// Rsh sets the target i to a >> n.
func (i *Int) Rsh(a *Int, n uint) *Int {
	i.Value.Rsh(&a.Value, n)
	return i
}

// And sets the target i to a & b.
func (i *Int) And(a, b *Int) *Int {
	i.Value.And(&a.Value, &b.Value)
	return i
}

// Or sets the target i to a | b.
func (i *Int) Or(a, b *Int) *Int {
	i.Value.Or(&a.Value, &b.Value)
	return i
}

// EqualTo judges if i and i2 have the same value.
func (i *Int) EqualTo(i2 *Int) bool {
	return i.Value.Cmp(&i2.Value) == 0
}

// Compare compares i and i2 and returns:
//
//	-1 if i <  i2
//	 0 if i == i2
//	+1 if i >  i2
func (i *Int) Compare(i2 *Int) int {
	return i.Value.Cmp(&i2.Value)
}

// Sign returns -1, 0 or +1 depending on the sign of i.
func (i *Int) Sign() int {
	return i.Value.Sign()
}

// BitLen returns the length of the absolute value of i in bits.
func (i *Int) BitLen() int {
	return i.Value.BitLen()
}

// Bit returns the value of the n'th bit of i.
func (i *Int) Bit(n int) uint {
	return i.Value.Bit(n)
}

// Bytes returns the absolute value of i as a big-endian byte slice.
func (i *Int) Bytes() []byte {
	return i.Value.Bytes()
}

// Uint64 returns the low 64 bits of i as uint64
func (i *Int) Uint64() uint64 {
	return i.Value.Uint64()
}

// Int64 returns i as an int64; the result is undefined if i does not fit.
func (i *Int) Int64() int64 {
	return i.Value.Int64()
}
