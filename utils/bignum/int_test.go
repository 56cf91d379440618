package bignum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInt(t *testing.T) {
	require.Equal(t, int64(-3), NewInt(int64(-3)).Int64())
	require.Equal(t, uint64(1)<<63, NewInt(uint64(1)<<63).Uint64())
	require.Equal(t, int64(255), NewInt("0xff").Int64())
	require.Equal(t, int64(0), NewInt(nil).Int64())
	require.Panics(t, func() { NewInt(3.14) })
}

func TestStats(t *testing.T) {

	values := make([]big.Int, 2)
	values[0].SetInt64(1)
	values[1].SetInt64(3)

	stats := Stats(values, 128)

	// mean = 2, std = sqrt(((1-2)^2 + (3-2)^2) / 1) = sqrt(2).
	require.InDelta(t, 0.5, stats[0], 1e-9)
	require.InDelta(t, 2.0, stats[1], 1e-9)
}
