package prng_test

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/tausch-project/tausch/prng"
)

// A coarse uniformity self-test on the byte stream. This is not a
// correctness oracle for the generator, only a sanity check that the output
// is not grossly skewed.
func TestByteDistribution(t *testing.T) {

	p, err := prng.NewKeccakPRG([]byte("distribution"))
	require.NoError(t, err)

	samples := make([]float64, 1<<14)
	buf := make([]byte, len(samples))
	_, err = p.Read(buf)
	require.NoError(t, err)
	for i, b := range buf {
		samples[i] = float64(b)
	}

	mean, err := stats.Mean(samples)
	require.NoError(t, err)
	require.InDelta(t, 127.5, mean, 5.0)

	sd, err := stats.StandardDeviation(samples)
	require.NoError(t, err)
	require.InDelta(t, 73.9, sd, 5.0)
}
