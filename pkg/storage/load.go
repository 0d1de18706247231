package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/census"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MethodInsert = "insert"
	MethodCopy   = "copy"

	maxConnectRetries = 5
)

// Connect opens a store, retrying with exponential backoff while the database comes up
func Connect(ctx context.Context, driver string, dsn string) (Store, error) {
	var open func(context.Context, string) (Store, error)

	switch driver {
	case DriverPostgres:
		open = func(ctx context.Context, dsn string) (Store, error) { return NewPostgresStore(ctx, dsn) }
	case DriverSQLite:
		open = func(ctx context.Context, dsn string) (Store, error) { return NewSQLiteStore(ctx, dsn) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	var store Store
	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxConnectRetries), ctx)

	err := backoff.RetryNotify(func() error {
		var err error
		store, err = open(ctx, dsn)
		return err
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("driver", driver).Dur("wait", wait).Msg("Database not ready, retrying")
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}

	log.Info().Str("driver", driver).Msg("Connected to database")

	return store, nil
}

type LoadResult struct {
	Rows    int
	Elapsed time.Duration
}

// Load recreates table and fills it with tracts using the given method, then adds its indexes
func Load(ctx context.Context, store Store, table string, tracts []census.Tract, method string) (*LoadResult, error) {
	if err := store.CreateTable(ctx, table); err != nil {
		return nil, err
	}

	log.Info().Int("rows", len(tracts)).Str("table", table).Str("method", method).Msgf("Loading %d rows", len(tracts))
	start := time.Now()

	var err error
	switch method {
	case MethodInsert:
		err = store.InsertRows(ctx, table, tracts)
	case MethodCopy:
		err = store.CopyRows(ctx, table, tracts)
	default:
		err = fmt.Errorf("unknown load method %s", method)
	}
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	log.Info().Dur("elapsed", elapsed).Str("table", table).Msg("Finished Loading")

	if err := store.AddIndexes(ctx, table); err != nil {
		return nil, err
	}

	return &LoadResult{Rows: len(tracts), Elapsed: elapsed}, nil
}
