package tbucket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrorsImplementBucketError(t *testing.T) {
	for _, err := range []error{
		ErrNonPositiveTokens,
		ErrTokensMoreThanCapacity,
		ErrNegativeWaitLimit,
	} {
		var be BucketError

		require.True(t, errors.As(err, &be))
		require.True(t, be.IsBucketError())
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	require.NotEqual(t, ErrNonPositiveTokens.Error(), ErrTokensMoreThanCapacity.Error())
	require.NotEqual(t, ErrTokensMoreThanCapacity.Error(), ErrNegativeWaitLimit.Error())
}

func TestSentinelErrorsSupportErrorsIs(t *testing.T) {
	wrapped := errors.New("context: " + ErrNonPositiveTokens.Error())
	require.NotErrorIs(t, wrapped, ErrNonPositiveTokens)
	require.ErrorIs(t, ErrNonPositiveTokens, ErrNonPositiveTokens)
}
