package formats

import (
	"io"
)

type Format interface {
	ParseFile(io.Reader) error
}

// Counter tracks rows accepted and rows dropped by a format
type Counter interface {
	Counts() RowCounts
}

type RowCounts struct {
	Parsed  int
	Dropped int
}

func (r *RowCounts) Accept() {
	r.Parsed++
}

func (r *RowCounts) Drop() {
	r.Dropped++
}

func (r RowCounts) Counts() RowCounts {
	return r
}
