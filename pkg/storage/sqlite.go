package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/travigo/transitlab/pkg/dataimporter/formats/census"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// a :memory: database only lives as long as its connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func sqlitePlaceholder(int) string {
	return "?"
}

func (s *SQLiteStore) CreateTable(ctx context.Context, table string) error {
	if _, err := s.db.ExecContext(ctx, dropTableSQL(table)); err != nil {
		return fmt.Errorf("dropping %s: %w", table, err)
	}

	if _, err := s.db.ExecContext(ctx, createTableSQL(table)); err != nil {
		return fmt.Errorf("creating %s: %w", table, err)
	}

	return nil
}

func (s *SQLiteStore) InsertRows(ctx context.Context, table string, tracts []census.Tract) error {
	query := insertSQL(table, sqlitePlaceholder)

	for _, tract := range tracts {
		if _, err := s.db.ExecContext(ctx, query, tract.WithZeroes()...); err != nil {
			return fmt.Errorf("inserting tract %v: %w", tract.TractID(), err)
		}
	}

	return nil
}

func (s *SQLiteStore) CopyRows(ctx context.Context, table string, tracts []census.Tract) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statement, err := tx.PrepareContext(ctx, insertSQL(table, sqlitePlaceholder))
	if err != nil {
		return fmt.Errorf("preparing copy into %s: %w", table, err)
	}
	defer statement.Close()

	for _, tract := range tracts {
		if _, err := statement.ExecContext(ctx, tract.Values...); err != nil {
			return fmt.Errorf("copying tract %v: %w", tract.TractID(), err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddIndexes(ctx context.Context, table string) error {
	primaryKey := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)", quote("idx_"+table+"_TractId"), quote(table), quote("TractId"))

	for _, statement := range []string{primaryKey, stateIndexSQL(table)} {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("indexing %s: %w", table, err)
		}
	}

	return nil
}

func (s *SQLiteStore) Validate(ctx context.Context, table string) (*Validation, error) {
	count := func(ctx context.Context, query string, args ...any) (int64, error) {
		var n int64
		err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
		return n, err
	}

	return validate(ctx, count, table, sqlitePlaceholder)
}

func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}
