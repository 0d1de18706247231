package stats

import "errors"

var (
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
	ErrSampleSize         = errors.New("sample size too small for test")
	ErrZeroVariance       = errors.New("samples have zero variance")
)
