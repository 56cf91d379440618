package sampling

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource(t *testing.T) {

	seed := NewSeedFromUint64(0xdeadbeef)

	t.Run("Determinism", func(t *testing.T) {

		a := NewSource(seed)
		b := NewSource(seed)

		for i := 0; i < 64; i++ {
			require.Equal(t, a.Uint64(), b.Uint64())
		}
	})

	t.Run("Reset", func(t *testing.T) {

		s := NewSource(seed)

		want := make([]uint64, 16)
		for i := range want {
			want[i] = s.Uint64()
		}

		s.Reset()

		for i := range want {
			require.Equal(t, want[i], s.Uint64())
		}
	})

	t.Run("SeedFromUint64", func(t *testing.T) {
		require.Equal(t, NewSeedFromUint64(1), NewSeedFromUint64(1))
		require.NotEqual(t, NewSeedFromUint64(1), NewSeedFromUint64(2))
		require.Equal(t, seed, NewSource(seed).Seed())
	})

	t.Run("ChildSeed", func(t *testing.T) {

		a := NewSource(seed)
		b := NewSource(seed)

		childA := a.NewSeed()
		childB := b.NewSeed()

		// Derivation is deterministic and distinct from the parent seed.
		require.Equal(t, childA, childB)
		require.NotEqual(t, seed, childA)

		// The parent stream advances past the derived bytes.
		require.Equal(t, a.Uint64(), b.Uint64())
	})

	t.Run("Float64", func(t *testing.T) {

		s := NewSource(seed)

		for i := 0; i < 1024; i++ {
			f := s.Float64()
			require.GreaterOrEqual(t, f, 0.0)
			require.Less(t, f, 1.0)
		}
	})

	t.Run("FromReader", func(t *testing.T) {

		s := NewSourceFromReader(rand.Reader)

		buf := make([]byte, 32)
		n, err := s.Read(buf)
		require.NoError(t, err)
		require.Equal(t, 32, n)

		require.Panics(t, func() { s.Seed() })
		require.Panics(t, func() { s.Reset() })
	})
}
