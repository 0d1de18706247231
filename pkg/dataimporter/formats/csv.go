package formats

import (
	"encoding/csv"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/travigo/transitlab/pkg/util"
)

// NewCSVReader tolerates records with missing columns
func NewCSVReader(in io.Reader) *csv.Reader {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	return r
}

type normalisedHeaderReader struct {
	reader     *csv.Reader
	headerRead bool
}

// NewNormalisedCSVReader lower cases and trims the header row so columns
// like " RELPOS" bind to `csv:"relpos"`
func NewNormalisedCSVReader(in io.Reader) gocsv.CSVReader {
	return &normalisedHeaderReader{reader: NewCSVReader(in)}
}

func (r *normalisedHeaderReader) Read() ([]string, error) {
	record, err := r.reader.Read()
	if err != nil {
		return record, err
	}

	if !r.headerRead {
		r.headerRead = true
		for i, column := range record {
			record[i] = util.NormaliseHeader(column)
		}
	}

	return record, nil
}

func (r *normalisedHeaderReader) ReadAll() ([][]string, error) {
	var records [][]string

	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}

		records = append(records, record)
	}
}
