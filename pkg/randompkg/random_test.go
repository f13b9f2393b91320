package randompkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntBetween(t *testing.T) {
	for i := 0; i < 1000; i++ {
		got := IntBetween(5, 10)

		require.GreaterOrEqual(t, got, int32(5))
		require.Less(t, got, int32(10))
	}
}

func TestDigits(t *testing.T) {
	got := Digits(12)

	require.Len(t, got, 12)

	for _, c := range got {
		require.GreaterOrEqual(t, c, '0')
		require.LessOrEqual(t, c, '9')
	}
}
