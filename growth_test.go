package unordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPolicy_roundUp(t *testing.T) {
	tests := []struct {
		name   string
		policy GrowthPolicy
		in     int
		want   int
	}{
		{"prime/zero", PrimeGrowth, 0, 1},
		{"prime/one", PrimeGrowth, 1, 1},
		{"prime/two", PrimeGrowth, 2, 2},
		{"prime/four", PrimeGrowth, 4, 5},
		{"prime/twenty", PrimeGrowth, 20, 23},
		{"pow2/zero", PowerOfTwoGrowth, 0, 1},
		{"pow2/three", PowerOfTwoGrowth, 3, 4},
		{"pow2/sixteen", PowerOfTwoGrowth, 16, 16},
		{"pow2/seventeen", PowerOfTwoGrowth, 17, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.policy.roundUp(tt.in))
		})
	}
}

func TestGrowthPolicy_index(t *testing.T) {
	for _, hash := range []uint64{0, 1, 7, 1 << 33, 0xABCD1234567890EF, ^uint64(0)} {
		assert.Equal(t, int(hash%13), PrimeGrowth.index(hash, 13))
		assert.Equal(t, int(hash%16), PowerOfTwoGrowth.index(hash, 16))
		assert.Equal(t, 0, PrimeGrowth.index(hash, 1))
		assert.Equal(t, 0, PowerOfTwoGrowth.index(hash, 1))
	}
}

func TestGrowthPolicy_Text(t *testing.T) {
	for _, g := range []GrowthPolicy{PrimeGrowth, PowerOfTwoGrowth} {
		text, err := g.MarshalText()
		require.NoError(t, err)

		var back GrowthPolicy
		require.NoError(t, back.UnmarshalText(text))
		require.Equal(t, g, back)
	}

	var g GrowthPolicy
	require.NoError(t, g.UnmarshalText([]byte("pow2")))
	require.Equal(t, PowerOfTwoGrowth, g)

	require.ErrorIs(t, g.UnmarshalText([]byte("fibonacci")), ErrInvalidGrowthPolicy)

	_, err := GrowthPolicy(9).MarshalText()
	require.ErrorIs(t, err, ErrInvalidGrowthPolicy)
	require.Equal(t, "unknown", GrowthPolicy(9).String())
}
