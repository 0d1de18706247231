package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelchTTest(t *testing.T) {
	result, err := WelchTTest([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})

	require.NoError(t, err)
	assert.InDelta(t, -1.8973665961010275, result.T, 1e-9)
	assert.InDelta(t, 5.882352941176471, result.DoF, 1e-9)
	assert.InDelta(t, 0.10753119494257135, result.P, 1e-6)
	assert.Equal(t, 5, result.N1)
	assert.Equal(t, 3.0, result.Mean1)
	assert.Equal(t, 6.0, result.Mean2)
}

func TestWelchTTestIdenticalSamples(t *testing.T) {
	sample := []float64{0.2, 0.4, 0.6, 0.8}

	result, err := WelchTTest(sample, sample)

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.T)
	assert.InDelta(t, 1.0, result.P, 1e-12)
}

func TestWelchTTestSymmetric(t *testing.T) {
	x := []float64{0.1, 0.3, 0.2, 0.5, 0.4}
	y := []float64{0.9, 0.7, 0.8, 0.95, 0.85, 0.6}

	forward, err := WelchTTest(x, y)
	require.NoError(t, err)
	backward, err := WelchTTest(y, x)
	require.NoError(t, err)

	assert.InDelta(t, forward.P, backward.P, 1e-12)
	assert.InDelta(t, -forward.T, backward.T, 1e-12)
	assert.Less(t, forward.P, 0.005)
}

func TestWelchTTestDegenerate(t *testing.T) {
	_, err := WelchTTest([]float64{1}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = WelchTTest([]float64{4, 4, 4}, []float64{4, 4})
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestWelchTTestOneSideConstant(t *testing.T) {
	result, err := WelchTTest([]float64{5, 5, 5}, []float64{1, 2, 3, 4})

	require.NoError(t, err)
	assert.Greater(t, result.T, 0.0)
	assert.Greater(t, result.P, 0.0)
	assert.Less(t, result.P, 1.0)
}
