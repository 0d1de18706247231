package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/census"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is a relational table of census tracts
type Store interface {
	// CreateTable drops any existing table and creates it empty
	CreateTable(ctx context.Context, table string) error
	// InsertRows runs one INSERT per tract, missing values stored as 0
	InsertRows(ctx context.Context, table string, tracts []census.Tract) error
	// CopyRows bulk loads tracts, missing values stored as NULL
	CopyRows(ctx context.Context, table string, tracts []census.Tract) error
	AddIndexes(ctx context.Context, table string) error
	Validate(ctx context.Context, table string) (*Validation, error)
	Close(ctx context.Context) error
}

type Validation struct {
	Rows           int64
	States         int64
	OregonCounties int64
	IowaCounties   int64
}

func (v *Validation) Write(w io.Writer) {
	fmt.Fprintf(w, "Rows: %d\n", v.Rows)
	fmt.Fprintf(w, "Distinct states: %d\n", v.States)
	fmt.Fprintf(w, "Distinct counties in Oregon: %d\n", v.OregonCounties)
	fmt.Fprintf(w, "Distinct counties in Iowa: %d\n", v.IowaCounties)
}

func quote(identifier string) string {
	return pgx.Identifier{identifier}.Sanitize()
}

func createTableSQL(table string) string {
	columns := make([]string, 0, len(census.TractColumns))
	for _, column := range census.TractColumns {
		columns = append(columns, fmt.Sprintf("%s %s", quote(column.Name), column.Type))
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(table), strings.Join(columns, ", "))
}

func dropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", quote(table))
}

func insertSQL(table string, placeholder func(int) string) string {
	columns := make([]string, len(census.TractColumns))
	placeholders := make([]string, len(census.TractColumns))
	for i, column := range census.TractColumns {
		columns[i] = quote(column.Name)
		placeholders[i] = placeholder(i + 1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(table), strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

func stateIndexSQL(table string) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", quote("idx_"+table+"_State"), quote(table), quote("State"))
}

// countFunc runs a single COUNT query
type countFunc func(ctx context.Context, query string, args ...any) (int64, error)

func validate(ctx context.Context, count countFunc, table string, placeholder func(int) string) (*Validation, error) {
	var validation Validation
	var err error

	if validation.Rows, err = count(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", quote(table))); err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}

	if validation.States, err = count(ctx, fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM %s", quote("State"), quote(table))); err != nil {
		return nil, fmt.Errorf("counting states: %w", err)
	}

	countiesQuery := fmt.Sprintf("SELECT COUNT(DISTINCT %s) FROM %s WHERE %s = %s", quote("County"), quote(table), quote("State"), placeholder(1))

	if validation.OregonCounties, err = count(ctx, countiesQuery, "Oregon"); err != nil {
		return nil, fmt.Errorf("counting Oregon counties: %w", err)
	}

	if validation.IowaCounties, err = count(ctx, countiesQuery, "Iowa"); err != nil {
		return nil, fmt.Errorf("counting Iowa counties: %w", err)
	}

	return &validation, nil
}
