// Package keccak implements the Keccak-f permutation family and the sponge
// construction built on it, with the original pad10*1 padding rule. Note that
// this is not the domain-separated SHA-3 variant standardized by NIST: digests
// only match NIST SHA-3 up to the padding difference.
package keccak

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned for unsupported permutation widths or
// rate/capacity combinations.
var ErrInvalidParameter = errors.New("keccak: invalid parameter")

// ErrAlreadySqueezing is returned by Absorb once squeezing has begun.
var ErrAlreadySqueezing = errors.New("keccak: cannot absorb after squeezing has begun")

// roundConstants are the iota step constants RC[0..23]. Only the low w bits
// are used for lane widths below 64.
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets[x][y] is the rho step rotation for lane (x, y).
var rotationOffsets = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// laneWidth returns w = b/25 for a supported state width b, or an error.
func laneWidth(b int) (int, error) {
	switch b {
	case 25, 50, 100, 200, 400, 800, 1600:
		return b / 25, nil
	}
	return 0, fmt.Errorf("%w: b must be one of 25, 50, 100, 200, 400, 800, 1600, got %d", ErrInvalidParameter, b)
}

// rounds returns nr = 12 + 2*log2(w).
func rounds(w int) int {
	l := 0
	for 1<<uint(l+1) <= w {
		l++
	}
	return 12 + 2*l
}

// Permute applies the Keccak-f[25*w] permutation in place. The state is a
// 5x5 matrix of w-bit lanes with lane (x, y) held in the low w bits of
// a[x+5*y]. w must be a power of two in [1, 64].
func Permute(a *[25]uint64, w int) error {
	if _, err := laneWidth(25 * w); err != nil {
		return err
	}
	permute(a, w, rounds(w))
	return nil
}

func permute(a *[25]uint64, w, nr int) {
	mask := uint64(1)<<uint(w) - 1
	if w == 64 {
		mask = ^uint64(0)
	}

	var b [25]uint64
	var c, d [5]uint64

	for i := 0; i < nr; i++ {
		// theta
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rot(c[(x+1)%5], 1, w, mask)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// rho and pi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y+5*((2*x+3*y)%5)] = rot(a[x+5*y], rotationOffsets[x][y], w, mask)
			}
		}

		// chi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & mask & b[(x+2)%5+5*y])
			}
		}

		// iota
		a[0] ^= roundConstants[i] & mask
	}
}

// rot rotates the low w bits of v left by n.
func rot(v uint64, n, w int, mask uint64) uint64 {
	n %= w
	if n == 0 {
		return v & mask
	}
	return (v>>uint(w-n) | v<<uint(n)) & mask
}
