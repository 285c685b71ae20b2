package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/codec"
)

func TestCodec(t *testing.T) {

	t.Run("LittleEndian", func(t *testing.T) {
		b, err := codec.IntToBytes(bigint.NewInt(0x0102), 2)
		require.NoError(t, err)
		require.Equal(t, []byte{0x02, 0x01}, b)
	})

	t.Run("FixedLengthPreservesHighZeros", func(t *testing.T) {
		b, err := codec.IntToBytes(bigint.NewInt(1), 4)
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, b)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := codec.IntToBytes(bigint.NewInt(256), 1)
		require.ErrorIs(t, err, codec.ErrOverflow)

		_, err = codec.IntToBytes(bigint.NewInt(-1), 4)
		require.ErrorIs(t, err, codec.ErrOverflow)

		_, err = codec.IntToBytes(bigint.NewInt(255), 1)
		require.NoError(t, err)
	})

	t.Run("Shortest", func(t *testing.T) {
		b, err := codec.IntToBytesShortest(bigint.NewInt(0x1ff))
		require.NoError(t, err)
		require.Equal(t, []byte{0xff, 0x01}, b)

		b, err = codec.IntToBytesShortest(bigint.NewInt(0))
		require.NoError(t, err)
		require.Empty(t, b)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		for _, x := range []int64{0, 1, 255, 256, 65535, 1 << 40} {
			for length := 8; length <= 10; length++ {
				b, err := codec.IntToBytes(bigint.NewInt(x), length)
				require.NoError(t, err)
				require.Len(t, b, length)
				require.Equal(t, x, codec.BytesToInt(b).Int64())
			}
		}
	})

	t.Run("BytesRoundTrip", func(t *testing.T) {
		in := []byte{0x00, 0xde, 0xad, 0x00, 0xbe, 0xef, 0x00}
		out, err := codec.IntToBytes(codec.BytesToInt(in), len(in))
		require.NoError(t, err)
		require.Equal(t, in, out)
	})
}
