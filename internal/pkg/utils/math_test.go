package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	t.Run("Both Zero", func(t *testing.T) {
		assert.Equal(t, float64(0), PercentChange(0, 0))
	})

	t.Run("Only Previous Zero", func(t *testing.T) {
		assert.Equal(t, float64(100), PercentChange(5, 0))
	})

	t.Run("Growth", func(t *testing.T) {
		assert.Equal(t, float64(50), PercentChange(150, 100))
	})

	t.Run("Decline", func(t *testing.T) {
		assert.Equal(t, float64(-25), PercentChange(75, 100))
	})

	t.Run("Rounded To Two Decimals", func(t *testing.T) {
		assert.Equal(t, 33.33, PercentChange(4, 3))
	})
}

func TestRoundTwoDecimals(t *testing.T) {
	assert.Equal(t, 3.14, RoundTwoDecimals(3.14159))
	assert.Equal(t, 2.68, RoundTwoDecimals(2.675000001))
	assert.Equal(t, float64(0), RoundTwoDecimals(0))
}
