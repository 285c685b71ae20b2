package bigint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tausch-project/tausch/bigint"
)

func TestInt(t *testing.T) {

	t.Run("Arithmetic", func(t *testing.T) {
		a := bigint.NewInt(1 << 40)
		b := bigint.NewInt(12345)
		require.Equal(t, "1099511640121", new(bigint.Int).Add(a, b).String())
		require.Equal(t, "1099511615431", new(bigint.Int).Sub(a, b).String())
		require.Equal(t, -1, new(bigint.Int).Sub(b, a).Compare(bigint.NewInt(0)))
		require.Equal(t, "152399025", new(bigint.Int).Mul(b, b).String())
	})

	t.Run("Mod", func(t *testing.T) {
		// Mod always returns a representative in [0, m)
		m := bigint.NewInt(7)
		r := new(bigint.Int).Mod(bigint.NewInt(-3), m)
		require.Equal(t, int64(4), r.Int64())
	})

	t.Run("DivMod", func(t *testing.T) {
		q, r := new(bigint.Int), new(bigint.Int)
		q.DivMod(bigint.NewInt(17), bigint.NewInt(5), r)
		require.Equal(t, int64(3), q.Int64())
		require.Equal(t, int64(2), r.Int64())
	})

	t.Run("ExpNegativeBase", func(t *testing.T) {
		// (-2)^3 mod 7 = (-8) mod 7 = 6
		r := new(bigint.Int).Exp(bigint.NewInt(-2), bigint.NewInt(3), bigint.NewInt(7))
		require.Equal(t, int64(6), r.Int64())
	})

	t.Run("Invert", func(t *testing.T) {
		inv, err := new(bigint.Int).Invert(bigint.NewInt(3), bigint.NewInt(11))
		require.NoError(t, err)
		require.Equal(t, int64(4), inv.Int64())

		_, err = new(bigint.Int).Invert(bigint.NewInt(6), bigint.NewInt(9))
		require.ErrorIs(t, err, bigint.ErrNoInverse)
	})

	t.Run("GCDAndLCM", func(t *testing.T) {
		require.Equal(t, int64(6), new(bigint.Int).GCD(bigint.NewInt(54), bigint.NewInt(24)).Int64())
		require.Equal(t, int64(216), new(bigint.Int).LCM(bigint.NewInt(54), bigint.NewInt(24)).Int64())
	})

	t.Run("BitLen", func(t *testing.T) {
		require.Equal(t, 0, bigint.NewInt(0).BitLen())
		require.Equal(t, 1, bigint.NewInt(1).BitLen())
		require.Equal(t, 41, bigint.NewInt(1<<40).BitLen())
	})

	t.Run("Shifts", func(t *testing.T) {
		v := bigint.NewInt(5)
		require.Equal(t, int64(40), new(bigint.Int).Lsh(v, 3).Int64())
		require.Equal(t, int64(2), new(bigint.Int).Rsh(v, 1).Int64())
		require.Equal(t, int64(4), new(bigint.Int).And(v, bigint.NewInt(4)).Int64())
		require.Equal(t, int64(7), new(bigint.Int).Or(v, bigint.NewInt(2)).Int64())
	})

	t.Run("String", func(t *testing.T) {
		i := bigint.NewIntFromString("0x10")
		require.Equal(t, int64(16), i.Int64())
		require.True(t, i.EqualTo(bigint.NewInt(16)))
	})
}
