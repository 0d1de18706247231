package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type Alternative int

const (
	// TwoSided sums every outcome at least as far from the mean as the observed one
	TwoSided Alternative = iota
	Less
	Greater
	// TwoSidedLikelihood sums every outcome no more likely than the observed one
	TwoSidedLikelihood
)

func (a Alternative) String() string {
	switch a {
	case Less:
		return "less"
	case Greater:
		return "greater"
	case TwoSidedLikelihood:
		return "two-sided-likelihood"
	default:
		return "two-sided"
	}
}

func ParseAlternative(s string) (Alternative, error) {
	for _, alternative := range []Alternative{TwoSided, Less, Greater, TwoSidedLikelihood} {
		if alternative.String() == s {
			return alternative, nil
		}
	}

	return TwoSided, fmt.Errorf("unknown alternative %q", s)
}

// outcomes within this relative tolerance of the observed one count as ties
const tieTolerance = 1e-7

// BinomialTest runs an exact binomial test of k successes out of n trials
// against the hypothesised success probability p and returns the p-value.
func BinomialTest(k int, n int, p float64, alternative Alternative) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return math.NaN(), fmt.Errorf("%w: got %v", ErrInvalidProbability, p)
	}
	if n <= 0 || k < 0 || k > n {
		return math.NaN(), fmt.Errorf("%w: k=%d n=%d", ErrSampleSize, k, n)
	}

	dist := distuv.Binomial{N: float64(n), P: p}

	// n*p can miss k by an ulp even when k/n is exactly p
	atMode := float64(k)/float64(n) == p

	var pValue float64

	switch alternative {
	case Less:
		for i := 0; i <= k; i++ {
			pValue += binomialProb(dist, n, i)
		}
	case Greater:
		for i := k; i <= n; i++ {
			pValue += binomialProb(dist, n, i)
		}
	case TwoSidedLikelihood:
		if atMode {
			return 1, nil
		}

		observed := binomialProb(dist, n, k) * (1 + tieTolerance)
		for i := 0; i <= n; i++ {
			if probability := binomialProb(dist, n, i); probability <= observed {
				pValue += probability
			}
		}
	default:
		if atMode {
			return 1, nil
		}

		expected := float64(n) * p
		distance := math.Abs(float64(k)-expected) * (1 - tieTolerance)
		for i := 0; i <= n; i++ {
			if math.Abs(float64(i)-expected) >= distance {
				pValue += binomialProb(dist, n, i)
			}
		}
	}

	return math.Min(1, pValue), nil
}

// binomialProb handles the degenerate probabilities the log-space pmf can't
func binomialProb(dist distuv.Binomial, n int, i int) float64 {
	switch dist.P {
	case 0:
		if i == 0 {
			return 1
		}
		return 0
	case 1:
		if i == n {
			return 1
		}
		return 0
	}

	return dist.Prob(float64(i))
}
