package tbucket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsumedProbe(t *testing.T) {
	p := consumedProbe(42)

	require.True(t, p.Consumed())
	require.Equal(t, uint64(42), p.RemainingTokens())
	require.Equal(t, int64(0), p.NanosToWaitForRefill())
}

func TestRejectedProbe(t *testing.T) {
	p := rejectedProbe(3, 1_500_000)

	require.False(t, p.Consumed())
	require.Equal(t, uint64(3), p.RemainingTokens())
	require.Equal(t, int64(1_500_000), p.NanosToWaitForRefill())
}
