package ring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"mpcring/utils/sampling"
	"mpcring/utils/structs"
)

func TestUniformSampler(t *testing.T) {

	seed := sampling.NewSeedFromUint64(0x5eed)

	t.Run("Determinism", func(t *testing.T) {

		a := NewUniformSampler[int32](sampling.NewSource(seed))
		b := NewUniformSampler[int32](sampling.NewSource(seed))

		ta, err := a.ReadNew(4, 8)
		require.NoError(t, err)
		tb, err := b.ReadNew(4, 8)
		require.NoError(t, err)

		require.True(t, ta.Equal(tb))

		c := NewUniformSampler[int32](sampling.NewSource(sampling.NewSeedFromUint64(0x5eee)))
		tc, err := c.ReadNew(4, 8)
		require.NoError(t, err)

		require.False(t, ta.Equal(tc))
	})

	t.Run("WithSource", func(t *testing.T) {

		u := NewUniformSampler[int8](sampling.NewSource(seed))
		require.Equal(t, seed, u.GetSource().Seed())

		fork := u.WithSource(sampling.NewSource(u.GetSource().NewSeed()))
		require.NotEqual(t, seed, fork.GetSource().Seed())
	})

	t.Run("InvalidShape", func(t *testing.T) {

		u := NewUniformSampler[int64](sampling.NewSource(seed))

		_, err := u.ReadNew(0)
		require.ErrorIs(t, err, ErrInvalidShape)

		_, err = u.ReadNew(2, -1)
		require.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("Distribution", func(t *testing.T) {

		u := NewUniformSampler[int64](sampling.NewSource(seed))

		sample, err := u.ReadNew(4096)
		require.NoError(t, err)

		stats := Stats(sample)

		// Uniform over the full 64-bit domain: the standard deviation is
		// 2^64/sqrt(12), i.e. log2(std) ~ 62.2, and the mean is centered.
		require.InDelta(t, 62.2, stats[0], 1.0)
		require.Less(t, math.Abs(stats[1]), math.Pow(2, 59))

		// Raw bit patterns must not be biased toward zero.
		v := NewUniformSampler[int8](sampling.NewSource(seed))
		raw, err := v.ReadNew(8192)
		require.NoError(t, err)

		var zeros int
		for _, x := range raw.Values {
			if x == 0 {
				zeros++
			}
		}
		require.Less(t, zeros, 200)
	})

	t.Run("ReadConcurrent", func(t *testing.T) {

		a := NewUniformSampler[int16](sampling.NewSource(seed))
		b := NewUniformSampler[int16](sampling.NewSource(seed))

		ta, err := structs.NewTensor[int16](7, 9)
		require.NoError(t, err)
		tb, err := structs.NewTensor[int16](7, 9)
		require.NoError(t, err)

		require.NoError(t, a.ReadConcurrent(ta, 4))
		require.NoError(t, b.ReadConcurrent(tb, 4))

		// Reproducible given the parent seed and the worker count.
		require.True(t, ta.Equal(tb))

		// More workers than elements still covers the whole tensor.
		small, err := structs.NewTensor[int16](10)
		require.NoError(t, err)
		require.NoError(t, a.ReadConcurrent(small, 64))

		require.Error(t, a.ReadConcurrent(ta, 0))
	})
}
