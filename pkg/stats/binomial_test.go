package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinomialTestTwoSided(t *testing.T) {
	tests := []struct {
		name     string
		k        int
		n        int
		p        float64
		expected float64
	}{
		{name: "symmetric tail", k: 9, n: 10, p: 0.5, expected: 22.0 / 1024},
		{name: "observed equals expected", k: 5, n: 10, p: 0.5, expected: 1},
		{name: "no successes", k: 0, n: 10, p: 0.5, expected: 2.0 / 1024},
		{name: "asymmetric probability", k: 2, n: 20, p: 0.3, expected: 0.08344502962981216},
		{name: "asymmetric low tail", k: 1, n: 40, p: 0.23, expected: 0.002123849955158225},
		{name: "large n", k: 30, n: 100, p: 0.5, expected: 7.850139645593672e-05},
		{name: "zero probability and zero successes", k: 0, n: 4, p: 0, expected: 1},
		{name: "zero probability with successes", k: 2, n: 4, p: 0, expected: 0},
		{name: "certain probability", k: 4, n: 4, p: 1, expected: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pValue, err := BinomialTest(test.k, test.n, test.p, TwoSided)

			require.NoError(t, err)
			assert.InDelta(t, test.expected, pValue, 1e-9)
			assert.GreaterOrEqual(t, pValue, 0.0)
			assert.LessOrEqual(t, pValue, 1.0)
		})
	}
}

func TestBinomialTestAlternatives(t *testing.T) {
	less, err := BinomialTest(2, 10, 0.5, Less)
	require.NoError(t, err)
	assert.InDelta(t, 56.0/1024, less, 1e-12)

	greater, err := BinomialTest(8, 10, 0.5, Greater)
	require.NoError(t, err)
	assert.InDelta(t, 56.0/1024, greater, 1e-12)

	likelihood, err := BinomialTest(9, 10, 0.5, TwoSidedLikelihood)
	require.NoError(t, err)
	assert.InDelta(t, 22.0/1024, likelihood, 1e-12)

	likelihood, err = BinomialTest(2, 20, 0.3, TwoSidedLikelihood)
	require.NoError(t, err)
	assert.InDelta(t, 0.05262794872972712, likelihood, 1e-9)

	likelihood, err = BinomialTest(3, 20, 0.35, TwoSidedLikelihood)
	require.NoError(t, err)
	assert.InDelta(t, 0.06395495878134305, likelihood, 1e-9)
}

func TestBinomialTestAtBaseline(t *testing.T) {
	tests := []struct {
		name string
		k    int
		n    int
		p    float64
	}{
		{name: "exact half", k: 5, n: 10, p: 0.5},
		{name: "inexact product", k: 15, n: 26, p: 45.0 / 78},
		{name: "fleet share", k: 10, n: 20, p: 120.0 / 240},
		{name: "thirds", k: 7, n: 21, p: 100.0 / 300},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, alternative := range []Alternative{TwoSided, TwoSidedLikelihood} {
				pValue, err := BinomialTest(test.k, test.n, test.p, alternative)

				require.NoError(t, err)
				assert.Equal(t, 1.0, pValue, alternative.String())
			}
		})
	}
}

func TestBinomialTestInvalidInput(t *testing.T) {
	_, err := BinomialTest(3, 10, 1.5, TwoSided)
	assert.ErrorIs(t, err, ErrInvalidProbability)

	_, err = BinomialTest(3, 10, math.NaN(), TwoSided)
	assert.ErrorIs(t, err, ErrInvalidProbability)

	_, err = BinomialTest(0, 0, 0.5, TwoSided)
	assert.ErrorIs(t, err, ErrSampleSize)

	_, err = BinomialTest(11, 10, 0.5, TwoSided)
	assert.ErrorIs(t, err, ErrSampleSize)
}

func TestParseAlternative(t *testing.T) {
	for _, alternative := range []Alternative{TwoSided, Less, Greater, TwoSidedLikelihood} {
		parsed, err := ParseAlternative(alternative.String())
		require.NoError(t, err)
		assert.Equal(t, alternative, parsed)
	}

	_, err := ParseAlternative("sideways")
	assert.Error(t, err)
}
