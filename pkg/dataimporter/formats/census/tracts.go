package census

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
)

type ColumnType string

const (
	ColumnTypeNumeric ColumnType = "NUMERIC"
	ColumnTypeText    ColumnType = "TEXT"
	ColumnTypeInteger ColumnType = "INTEGER"
	ColumnTypeDecimal ColumnType = "DECIMAL"
)

type Column struct {
	Name string
	Type ColumnType
}

// TractColumns is the ACS 2017 census tract layout, in file and table order
var TractColumns = []Column{
	{"TractId", ColumnTypeNumeric},
	{"State", ColumnTypeText},
	{"County", ColumnTypeText},
	{"TotalPop", ColumnTypeInteger},
	{"Men", ColumnTypeInteger},
	{"Women", ColumnTypeInteger},
	{"Hispanic", ColumnTypeDecimal},
	{"White", ColumnTypeDecimal},
	{"Black", ColumnTypeDecimal},
	{"Native", ColumnTypeDecimal},
	{"Asian", ColumnTypeDecimal},
	{"Pacific", ColumnTypeDecimal},
	{"VotingAgeCitizen", ColumnTypeDecimal},
	{"Income", ColumnTypeDecimal},
	{"IncomeErr", ColumnTypeDecimal},
	{"IncomePerCap", ColumnTypeDecimal},
	{"IncomePerCapErr", ColumnTypeDecimal},
	{"Poverty", ColumnTypeDecimal},
	{"ChildPoverty", ColumnTypeDecimal},
	{"Professional", ColumnTypeDecimal},
	{"Service", ColumnTypeDecimal},
	{"Office", ColumnTypeDecimal},
	{"Construction", ColumnTypeDecimal},
	{"Production", ColumnTypeDecimal},
	{"Drive", ColumnTypeDecimal},
	{"Carpool", ColumnTypeDecimal},
	{"Transit", ColumnTypeDecimal},
	{"Walk", ColumnTypeDecimal},
	{"OtherTransp", ColumnTypeDecimal},
	{"WorkAtHome", ColumnTypeDecimal},
	{"MeanCommute", ColumnTypeDecimal},
	{"Employed", ColumnTypeInteger},
	{"PrivateWork", ColumnTypeDecimal},
	{"PublicWork", ColumnTypeDecimal},
	{"SelfEmployed", ColumnTypeDecimal},
	{"FamilyWork", ColumnTypeDecimal},
	{"Unemployment", ColumnTypeDecimal},
}

func ColumnNames() []string {
	names := make([]string, 0, len(TractColumns))
	for _, column := range TractColumns {
		names = append(names, column.Name)
	}

	return names
}

// Tract holds one row's values in TractColumns order. Empty fields are nil.
type Tract struct {
	Values []any
}

func (t Tract) TractID() any {
	return t.Values[0]
}

// WithZeroes replaces every missing value with 0
func (t Tract) WithZeroes() []any {
	values := make([]any, len(t.Values))

	for i, value := range t.Values {
		if value == nil {
			if TractColumns[i].Type == ColumnTypeText {
				values[i] = ""
			} else {
				values[i] = 0
			}
			continue
		}
		values[i] = value
	}

	return values
}

type TractFile struct {
	Tracts []Tract

	formats.RowCounts
}

func (f *TractFile) ParseFile(reader io.Reader) error {
	rows, err := gocsv.CSVToMaps(reader)
	if err != nil {
		return fmt.Errorf("parsing census tracts: %w", err)
	}

	for i, row := range rows {
		tract, err := parseTract(row)
		if err != nil {
			log.Debug().Err(err).Int("row", i+1).Msg("Dropping census tract")
			f.Drop()
			continue
		}

		f.Accept()
		f.Tracts = append(f.Tracts, tract)
	}

	log.Info().Int("tracts", f.Parsed).Int("dropped", f.Dropped).Msg("Parsed census tracts")

	return nil
}

func parseTract(row map[string]string) (Tract, error) {
	tract := Tract{Values: make([]any, len(TractColumns))}

	for i, column := range TractColumns {
		raw := strings.TrimSpace(row[column.Name])
		if raw == "" {
			continue
		}

		switch column.Type {
		case ColumnTypeText:
			tract.Values[i] = raw
		case ColumnTypeInteger, ColumnTypeNumeric:
			value, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return tract, fmt.Errorf("%s: %w", column.Name, err)
			}
			tract.Values[i] = value
		default:
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return tract, fmt.Errorf("%s: %w", column.Name, err)
			}
			tract.Values[i] = value
		}
	}

	if tract.Values[0] == nil {
		return tract, fmt.Errorf("missing TractId")
	}

	return tract, nil
}
