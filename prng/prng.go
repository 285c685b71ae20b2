// Package prng implements a deterministic pseudorandom generator backed by
// the Keccak sponge. For a fixed seed and fixed sponge parameters, two
// instances emit bit-identical streams, including after state capture and
// restore at any bit offset, and independently of how reads are chunked.
package prng

import (
	"crypto/rand"
	"fmt"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/codec"
	"github.com/tausch-project/tausch/keccak"
)

// KeccakPRG is a deterministic random bit generator. It reads the sponge
// output stream through a little-endian bit buffer so that consecutive
// draws of arbitrary bit widths consume the stream without gaps.
//
// A KeccakPRG is not safe for concurrent use.
type KeccakPRG struct {
	rate     int
	capacity int

	sponge *keccak.Sponge
	buf    *bigint.Int
	bufLen int

	// post-seed snapshot, used by Reset
	initial keccak.SpongeState
}

// NewKeccakPRG returns a PRG with the default sponge parameters, seeded with
// the given bytes. A nil seed reads capacity/8 bytes from the OS entropy
// source; an empty non-nil seed is a valid deterministic seed.
func NewKeccakPRG(seed []byte) (*KeccakPRG, error) {
	return NewKeccakPRGWithParams(seed, keccak.DefaultRate, keccak.DefaultCapacity)
}

// NewKeccakPRGWithParams returns a PRG over the Keccak[rate, capacity] sponge.
func NewKeccakPRGWithParams(seed []byte, rate, capacity int) (*KeccakPRG, error) {
	p := &KeccakPRG{rate: rate, capacity: capacity}
	if _, err := keccak.NewSponge(rate, capacity); err != nil {
		return nil, err
	}
	if err := p.Seed(seed); err != nil {
		return nil, err
	}
	return p, nil
}

// Seed re-keys the PRG: it constructs a fresh sponge, absorbs the seed and
// empties the bit buffer. A nil seed is replaced by capacity/8 bytes from
// the OS entropy source.
func (p *KeccakPRG) Seed(seed []byte) error {
	if seed == nil {
		seed = make([]byte, (p.capacity+7)/8)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("prng: cannot read OS entropy: %w", err)
		}
	}
	sponge, err := keccak.NewSponge(p.rate, p.capacity)
	if err != nil {
		return err
	}
	if err := sponge.Absorb(seed); err != nil {
		return err
	}
	p.sponge = sponge
	p.buf = bigint.NewInt(0)
	p.bufLen = 0
	p.initial = sponge.Snapshot()
	return nil
}

// GetRandBits returns a uniform integer in [0, 2^n). It consumes exactly n
// bits of the underlying stream.
func (p *KeccakPRG) GetRandBits(n int) *bigint.Int {
	if n <= 0 {
		return bigint.NewInt(0)
	}
	for p.bufLen < n {
		chunk := p.sponge.Squeeze((n - p.bufLen + 7) / 8)
		v := codec.BytesToInt(chunk)
		p.buf.Or(p.buf, v.Lsh(v, uint(p.bufLen)))
		p.bufLen += 8 * len(chunk)
	}
	mask := bigint.NewInt(1)
	mask.Sub(mask.Lsh(mask, uint(n)), bigint.NewInt(1))
	out := new(bigint.Int).And(p.buf, mask)
	p.buf.Rsh(p.buf, uint(n))
	p.bufLen -= n
	return out
}

// Read fills b with pseudorandom bytes, drawn from the same bit stream as
// GetRandBits. It implements io.Reader and never fails.
func (p *KeccakPRG) Read(b []byte) (int, error) {
	v := p.GetRandBits(8 * len(b))
	out, err := codec.IntToBytes(v, len(b))
	if err != nil {
		return 0, err
	}
	copy(b, out)
	return len(b), nil
}

// RandRange returns a uniform integer in [0, max) by rejection sampling.
// max must be positive.
func (p *KeccakPRG) RandRange(max *bigint.Int) *bigint.Int {
	if max.Sign() <= 0 {
		panic("prng: RandRange requires a positive bound")
	}
	bits := max.BitLen()
	for {
		v := p.GetRandBits(bits)
		if v.Compare(max) < 0 {
			return v
		}
	}
}

// Intn returns a uniform int in [0, n). n must be positive.
func (p *KeccakPRG) Intn(n int) int {
	return int(p.RandRange(bigint.NewInt(int64(n))).Int64())
}

// Shuffle pseudo-randomizes the order of n elements using the given swap
// function, via the Fisher-Yates algorithm.
func (p *KeccakPRG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, p.Intn(i+1))
	}
}

// JumpAhead advances the PRG by k sponge-block-sized squeezes, clearing the
// bit buffer.
func (p *KeccakPRG) JumpAhead(k int) {
	p.buf = bigint.NewInt(0)
	p.bufLen = 0
	p.sponge.Squeeze(k * p.rate / 8)
}

// Reset rewinds the PRG to its post-seed state, so that it reproduces the
// stream emitted since seeding.
func (p *KeccakPRG) Reset() {
	sponge, err := p.initial.Restore()
	if err != nil {
		panic(err)
	}
	p.sponge = sponge
	p.buf = bigint.NewInt(0)
	p.bufLen = 0
}

// State is a deep copy of a PRG's position in its stream.
type State struct {
	Rate     int
	Capacity int
	Sponge   keccak.SpongeState
	Buf      *bigint.Int
	BufLen   int
}

// GetState captures the PRG state. Restoring it reproduces the exact bit
// sequence from this point forward.
func (p *KeccakPRG) GetState() State {
	return State{
		Rate:     p.rate,
		Capacity: p.capacity,
		Sponge:   p.sponge.Snapshot(),
		Buf:      bigint.Copy(p.buf),
		BufLen:   p.bufLen,
	}
}

// SetState restores a state captured by GetState.
func (p *KeccakPRG) SetState(st State) error {
	sponge, err := st.Sponge.Restore()
	if err != nil {
		return err
	}
	p.rate = st.Rate
	p.capacity = st.Capacity
	p.sponge = sponge
	p.buf = bigint.Copy(st.Buf)
	p.bufLen = st.BufLen
	p.initial = st.Sponge
	return nil
}

// FromState constructs a new PRG positioned at the captured state.
func FromState(st State) (*KeccakPRG, error) {
	p := &KeccakPRG{}
	if err := p.SetState(st); err != nil {
		return nil, err
	}
	return p, nil
}
