package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banditlab/banditlab/pkg/core"
)

func TestMeanHalfWidth(t *testing.T) {
	t.Run("rejects fewer than two samples", func(t *testing.T) {
		for _, samples := range [][]float64{nil, {1.0}} {
			_, _, err := MeanHalfWidth(samples, 0.95)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidArgument))
		}
	})

	t.Run("rejects confidence outside (0,1)", func(t *testing.T) {
		for _, confidence := range []float64{0, 1, -0.5} {
			_, _, err := MeanHalfWidth([]float64{1, 2}, confidence)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidArgument))
		}
	})

	t.Run("two samples use one degree of freedom", func(t *testing.T) {
		// mean 1, sample stddev sqrt(2), SEM 1, t(0.975; df=1) = 12.7062
		mean, halfWidth, err := MeanHalfWidth([]float64{0, 2}, 0.95)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, mean, 1e-12)
		assert.InDelta(t, 12.7062, halfWidth, 1e-3)
	})

	t.Run("three samples", func(t *testing.T) {
		// mean 2, sample stddev 1, SEM 1/sqrt(3), t(0.975; df=2) = 4.30265
		mean, halfWidth, err := MeanHalfWidth([]float64{1, 2, 3}, 0.95)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, mean, 1e-12)
		assert.InDelta(t, 2.4841, halfWidth, 1e-3)
	})

	t.Run("zero spread yields zero half-width", func(t *testing.T) {
		mean, halfWidth, err := MeanHalfWidth([]float64{5, 5, 5, 5}, 0.95)
		require.NoError(t, err)
		assert.Equal(t, 5.0, mean)
		assert.Equal(t, 0.0, halfWidth)
	})
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}
