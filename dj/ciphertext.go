package dj

import (
	"fmt"

	"github.com/tausch-project/tausch/bigint"
)

// Ciphertext holds a value c in [0, m) where m = n^(s+1) is the ciphertext
// modulus fixed at encryption. Two ciphertexts are compatible iff their
// moduli are equal.
//
// A ciphertext optionally carries a power cache of c^(2^i) mod m lanes,
// filled lazily by MulScalar. The cache is derived state: it never
// participates in equality and is dropped by WithoutCache.
type Ciphertext struct {
	Value *bigint.Int

	modulus *bigint.Int // n^(s+1)
	s       int

	cacheEnabled bool
	cache        []*bigint.Int
}

// NewCiphertext wraps the raw value c in the ciphertext space of modulus m
// at expansion s. withCache selects whether the power cache is enabled; pass
// false for ciphertexts that will be shared or published.
func NewCiphertext(c, m *bigint.Int, s int, withCache bool) (*Ciphertext, error) {
	if s <= 0 {
		return nil, fmt.Errorf("%w: expansion parameter must be positive, got %d", ErrInvalidCiphertext, s)
	}
	if c.Sign() < 0 || c.Compare(m) >= 0 {
		return nil, fmt.Errorf("%w: value outside [0, m)", ErrInvalidCiphertext)
	}
	return &Ciphertext{
		Value:        bigint.Copy(c),
		modulus:      bigint.Copy(m),
		s:            s,
		cacheEnabled: withCache,
	}, nil
}

// Modulus returns the ciphertext modulus m = n^(s+1).
func (ct *Ciphertext) Modulus() *bigint.Int {
	return ct.modulus
}

// S returns the expansion parameter the ciphertext was encrypted at.
func (ct *Ciphertext) S() int {
	return ct.s
}

// Compatible reports whether two ciphertexts share a ciphertext space.
func (ct *Ciphertext) Compatible(other *Ciphertext) bool {
	return ct.modulus.EqualTo(other.modulus)
}

// Equal compares value and modulus; the power cache does not participate.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.s == other.s && ct.Value.EqualTo(other.Value) && ct.modulus.EqualTo(other.modulus)
}

// CopyNew returns a deep copy of the ciphertext, including the cache lanes
// filled so far.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	out := &Ciphertext{
		Value:        bigint.Copy(ct.Value),
		modulus:      bigint.Copy(ct.modulus),
		s:            ct.s,
		cacheEnabled: ct.cacheEnabled,
	}
	if ct.cache != nil {
		out.cache = make([]*bigint.Int, len(ct.cache))
		for i, v := range ct.cache {
			out.cache[i] = bigint.Copy(v)
		}
	}
	return out
}

// WithoutCache returns a view of the ciphertext with the power cache
// disabled, so that operations on it never mutate shared state.
func (ct *Ciphertext) WithoutCache() *Ciphertext {
	return &Ciphertext{Value: ct.Value, modulus: ct.modulus, s: ct.s}
}

// Precompute eagerly fills the whole power cache. This costs one squaring
// per bit of the modulus and is rarely worth it; MulScalar fills the cache
// lazily as exponent bits require.
func (ct *Ciphertext) Precompute() {
	ct.cacheEnabled = true
	ct.fillCache(ct.modulus.BitLen() - 1)
}

// fillCache extends the cache through lane i, each lane the square of the
// previous one.
func (ct *Ciphertext) fillCache(i int) {
	if ct.cache == nil {
		ct.cache = append(ct.cache, bigint.Copy(ct.Value))
	}
	for len(ct.cache) <= i {
		last := ct.cache[len(ct.cache)-1]
		sq := new(bigint.Int).Mul(last, last)
		ct.cache = append(ct.cache, sq.Mod(sq, ct.modulus))
	}
}

// Add returns the ciphertext of the sum of the two plaintexts, computed as
// x*y mod m. The operands must be compatible.
func (ct *Ciphertext) Add(other *Ciphertext) (*Ciphertext, error) {
	if !ct.Compatible(other) {
		return nil, ErrKeyMismatch
	}
	v := new(bigint.Int).Mul(ct.Value, other.Value)
	return ct.derived(v.Mod(v, ct.modulus)), nil
}

// AddPlain treats k as an encrypted constant and adds it, computed as
// x*k mod m.
func (ct *Ciphertext) AddPlain(k *bigint.Int) *Ciphertext {
	v := new(bigint.Int).Mul(ct.Value, k)
	return ct.derived(v.Mod(v, ct.modulus))
}

// Sub returns the ciphertext of the difference of the two plaintexts,
// computed as x * y^-1 mod m.
func (ct *Ciphertext) Sub(other *Ciphertext) (*Ciphertext, error) {
	if !ct.Compatible(other) {
		return nil, ErrKeyMismatch
	}
	inv, err := new(bigint.Int).Invert(other.Value, ct.modulus)
	if err != nil {
		return nil, err
	}
	v := inv.Mul(ct.Value, inv)
	return ct.derived(v.Mod(v, ct.modulus)), nil
}

// Neg returns the ciphertext of the negated plaintext, computed as
// x^-1 mod m.
func (ct *Ciphertext) Neg() (*Ciphertext, error) {
	inv, err := new(bigint.Int).Invert(ct.Value, ct.modulus)
	if err != nil {
		return nil, err
	}
	return ct.derived(inv), nil
}

// MulScalar returns the ciphertext of the plaintext multiplied by k,
// computed as x^(k mod m) mod m by square-and-multiply. When the power
// cache is enabled, bit i of the exponent multiplies in the cached
// x^(2^i) lane, filling missing lanes as it goes.
func (ct *Ciphertext) MulScalar(k *bigint.Int) *Ciphertext {
	e := new(bigint.Int).Mod(k, ct.modulus)
	if ct.cacheEnabled {
		acc := bigint.NewInt(1)
		for i, bits := 0, e.BitLen(); i < bits; i++ {
			if e.Bit(i) == 1 {
				ct.fillCache(i)
				acc.Mul(acc, ct.cache[i])
				acc.Mod(acc, ct.modulus)
			}
		}
		return ct.derived(acc)
	}
	return ct.derived(new(bigint.Int).Exp(ct.Value, e, ct.modulus))
}

// Div has no homomorphic counterpart.
func (ct *Ciphertext) Div(*Ciphertext) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// Mod has no homomorphic counterpart.
func (ct *Ciphertext) Mod(*bigint.Int) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// And has no homomorphic counterpart.
func (ct *Ciphertext) And(*Ciphertext) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// Or has no homomorphic counterpart.
func (ct *Ciphertext) Or(*Ciphertext) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// Xor has no homomorphic counterpart.
func (ct *Ciphertext) Xor(*Ciphertext) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// Lsh has no homomorphic counterpart.
func (ct *Ciphertext) Lsh(uint) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// Rsh has no homomorphic counterpart.
func (ct *Ciphertext) Rsh(uint) (*Ciphertext, error) {
	return nil, ErrUnsupportedOperation
}

// derived wraps a result value in a fresh ciphertext of the same space,
// inheriting the cache preference but not the cache contents.
func (ct *Ciphertext) derived(v *bigint.Int) *Ciphertext {
	return &Ciphertext{
		Value:        v,
		modulus:      ct.modulus,
		s:            ct.s,
		cacheEnabled: ct.cacheEnabled,
	}
}

func (ct *Ciphertext) String() string {
	return fmt.Sprintf("Ciphertext(%s, s=%d)", ct.Value.String(), ct.s)
}
