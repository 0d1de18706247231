package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"
)

type TTestResult struct {
	T   float64
	DoF float64
	P   float64

	N1    int
	N2    int
	Mean1 float64
	Mean2 float64
}

// WelchTTest is the two-sided two-sample t-test without the equal variance
// assumption. Both variances are unbiased estimates and the degrees of freedom
// come from the Welch-Satterthwaite approximation.
func WelchTTest(x []float64, y []float64) (TTestResult, error) {
	result := TTestResult{N1: len(x), N2: len(y)}

	if len(x) < 2 || len(y) < 2 {
		return result, fmt.Errorf("%w: n1=%d n2=%d", ErrSampleSize, len(x), len(y))
	}

	n1 := float64(len(x))
	n2 := float64(len(y))

	mean1, variance1 := stat.MeanVariance(x, nil)
	mean2, variance2 := stat.MeanVariance(y, nil)
	result.Mean1 = mean1
	result.Mean2 = mean2

	standardError1 := variance1 / n1
	standardError2 := variance2 / n2
	standardError := standardError1 + standardError2

	if standardError == 0 {
		return result, ErrZeroVariance
	}

	result.T = (mean1 - mean2) / math.Sqrt(standardError)
	result.DoF = standardError * standardError /
		(standardError1*standardError1/(n1-1) + standardError2*standardError2/(n2-1))

	// Two-sided Student's t tail as a regularized incomplete beta
	result.P = mathext.RegIncBeta(result.DoF/2, 0.5, result.DoF/(result.DoF+result.T*result.T))

	return result, nil
}
