package prng_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/prng"
)

var seeds = []string{"", "foo", "bar", "baz", "qux", "quux", "corge", "grault"}

func TestKeccakPRG(t *testing.T) {

	const bits = 4096

	t.Run("Deterministic", func(t *testing.T) {
		for _, seed := range seeds {
			a, err := prng.NewKeccakPRG([]byte(seed))
			require.NoError(t, err)
			b, err := prng.NewKeccakPRG([]byte(seed))
			require.NoError(t, err)
			require.True(t, a.GetRandBits(bits).EqualTo(b.GetRandBits(bits)),
				"seed %q: identical instances must emit identical streams", seed)
		}
	})

	t.Run("Reseed", func(t *testing.T) {
		a, err := prng.NewKeccakPRG([]byte{0x00})
		require.NoError(t, err)
		require.NoError(t, a.Seed([]byte("foo")))
		b, err := prng.NewKeccakPRG([]byte("foo"))
		require.NoError(t, err)
		require.True(t, a.GetRandBits(bits).EqualTo(b.GetRandBits(bits)))
	})

	t.Run("Reset", func(t *testing.T) {
		p, err := prng.NewKeccakPRG([]byte("foo"))
		require.NoError(t, err)
		first := p.GetRandBits(bits)
		p.GetRandBits(bits)
		p.Reset()
		require.True(t, first.EqualTo(p.GetRandBits(bits)))
	})

	t.Run("SetStateInitial", func(t *testing.T) {
		for _, seed := range seeds {
			p, err := prng.NewKeccakPRG([]byte(seed))
			require.NoError(t, err)
			state := p.GetState()
			p.GetRandBits(bits)
			require.NoError(t, p.SetState(state))

			fresh, err := prng.NewKeccakPRG([]byte(seed))
			require.NoError(t, err)
			require.True(t, fresh.GetRandBits(bits).EqualTo(p.GetRandBits(bits)), "seed %q", seed)
		}
	})

	t.Run("SetStateIntermediate", func(t *testing.T) {
		p, err := prng.NewKeccakPRG([]byte("bar"))
		require.NoError(t, err)
		p.GetRandBits(bits)
		state := p.GetState()

		other, err := prng.NewKeccakPRG([]byte("bar"))
		require.NoError(t, err)
		other.GetRandBits(bits)
		require.NoError(t, other.SetState(state))
		require.True(t, p.GetRandBits(bits).EqualTo(other.GetRandBits(bits)))
	})

	t.Run("FromStateUnaligned", func(t *testing.T) {
		// capture mid-buffer, at a non-byte bit offset
		p, err := prng.NewKeccakPRG([]byte("baz"))
		require.NoError(t, err)
		p.GetRandBits(bits / 3)
		state := p.GetState()

		other, err := prng.FromState(state)
		require.NoError(t, err)
		require.True(t, p.GetRandBits(bits).EqualTo(other.GetRandBits(bits)))
	})

	t.Run("StateIsDeepCopy", func(t *testing.T) {
		p, err := prng.NewKeccakPRG([]byte("qux"))
		require.NoError(t, err)
		p.GetRandBits(13)
		state := p.GetState()
		expected := p.GetRandBits(bits)

		// draws on the original must not disturb the captured state
		p.GetRandBits(bits)
		restored, err := prng.FromState(state)
		require.NoError(t, err)
		require.True(t, expected.EqualTo(restored.GetRandBits(bits)))
	})

	t.Run("JumpAhead", func(t *testing.T) {
		p, err := prng.NewKeccakPRG([]byte("foo"))
		require.NoError(t, err)
		blockBits := 1024 // default sponge rate
		p.GetRandBits(4 * blockBits)

		jumped, err := prng.NewKeccakPRG([]byte("foo"))
		require.NoError(t, err)
		jumped.JumpAhead(4)
		require.True(t, p.GetRandBits(bits).EqualTo(jumped.GetRandBits(bits)))
	})

	t.Run("ChunkingIndependence", func(t *testing.T) {
		// getrandbits(N) == low | (high << N/3) drawn in two calls
		for _, seed := range seeds {
			whole, err := prng.NewKeccakPRG([]byte(seed))
			require.NoError(t, err)
			parts, err := prng.NewKeccakPRG([]byte(seed))
			require.NoError(t, err)

			lowBits := bits / 3
			low := parts.GetRandBits(lowBits)
			high := parts.GetRandBits(bits - lowBits)
			combined := new(bigint.Int).Or(low, high.Lsh(high, uint(lowBits)))
			require.True(t, whole.GetRandBits(bits).EqualTo(combined), "seed %q", seed)
		}
	})

	t.Run("ReadMatchesBitStream", func(t *testing.T) {
		a, err := prng.NewKeccakPRG([]byte("grault"))
		require.NoError(t, err)
		b, err := prng.NewKeccakPRG([]byte("grault"))
		require.NoError(t, err)

		buf := make([]byte, 64)
		n, err := a.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 64, n)

		v := b.GetRandBits(512)
		for i := 0; i < 64; i++ {
			require.Equal(t, buf[i], byte(new(bigint.Int).Rsh(v, uint(8*i)).Uint64()&0xff))
		}
	})

	t.Run("RangeAndShuffle", func(t *testing.T) {
		p, err := prng.NewKeccakPRG([]byte("foo"))
		require.NoError(t, err)

		max := bigint.NewInt(1000)
		for i := 0; i < 100; i++ {
			v := p.RandRange(max)
			require.True(t, v.Sign() >= 0 && v.Compare(max) < 0)
		}

		perm := []int{0, 1, 2, 3, 4, 5, 6, 7}
		p.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		seen := make(map[int]bool)
		for _, v := range perm {
			seen[v] = true
		}
		require.Len(t, seen, 8)
	})

	t.Run("OSEntropySeed", func(t *testing.T) {
		a, err := prng.NewKeccakPRG(nil)
		require.NoError(t, err)
		b, err := prng.NewKeccakPRG(nil)
		require.NoError(t, err)
		require.False(t, a.GetRandBits(256).EqualTo(b.GetRandBits(256)))
	})

	t.Run("InvalidParams", func(t *testing.T) {
		_, err := prng.NewKeccakPRGWithParams([]byte("foo"), 1020, 580)
		require.Error(t, err)
	})
}
