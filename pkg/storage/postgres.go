package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/census"
)

type PostgresStore struct {
	conn *pgx.Conn
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, err
	}

	return &PostgresStore{conn: conn}, nil
}

func postgresPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (s *PostgresStore) CreateTable(ctx context.Context, table string) error {
	if _, err := s.conn.Exec(ctx, dropTableSQL(table)); err != nil {
		return fmt.Errorf("dropping %s: %w", table, err)
	}

	if _, err := s.conn.Exec(ctx, createTableSQL(table)); err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}

	return nil
}

func (s *PostgresStore) InsertRows(ctx context.Context, table string, tracts []census.Tract) error {
	query := insertSQL(table, postgresPlaceholder)

	for _, tract := range tracts {
		if _, err := s.conn.Exec(ctx, query, tract.WithZeroes()...); err != nil {
			return fmt.Errorf("inserting tract %v: %w", tract.TractID(), err)
		}
	}

	return nil
}

func (s *PostgresStore) CopyRows(ctx context.Context, table string, tracts []census.Tract) error {
	rows := make([][]any, len(tracts))
	for i, tract := range tracts {
		rows[i] = tract.Values
	}

	copied, err := s.conn.CopyFrom(ctx, pgx.Identifier{table}, census.ColumnNames(), pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copying into %s: %w", table, err)
	}

	if copied != int64(len(tracts)) {
		return fmt.Errorf("copied %d of %d tracts into %s", copied, len(tracts), table)
	}

	return nil
}

func (s *PostgresStore) AddIndexes(ctx context.Context, table string) error {
	primaryKey := fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s)", quote(table), quote("TractId"))

	for _, statement := range []string{primaryKey, stateIndexSQL(table)} {
		if _, err := s.conn.Exec(ctx, statement); err != nil {
			return fmt.Errorf("indexing %s: %w", table, err)
		}
	}

	return nil
}

func (s *PostgresStore) Validate(ctx context.Context, table string) (*Validation, error) {
	count := func(ctx context.Context, query string, args ...any) (int64, error) {
		var n int64
		err := s.conn.QueryRow(ctx, query, args...).Scan(&n)
		return n, err
	}

	return validate(ctx, count, table, postgresPlaceholder)
}

func (s *PostgresStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
