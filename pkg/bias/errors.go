package bias

import "errors"

var (
	// ErrInvalidBaseline means the dataset-wide boarding rate is undefined
	ErrInvalidBaseline = errors.New("boarding baseline is undefined")
	ErrNoData          = errors.New("no data to test")
)
