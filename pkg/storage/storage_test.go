package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/census"
)

func tract(id int64, state string, county string) census.Tract {
	values := make([]any, len(census.TractColumns))
	values[0] = id
	values[1] = state
	values[2] = county
	values[3] = int64(1000)
	values[6] = 12.5

	return census.Tract{Values: values}
}

func fixtureTracts() []census.Tract {
	return []census.Tract{
		tract(41067030100, "Oregon", "Washington County"),
		tract(41067030200, "Oregon", "Washington County"),
		tract(41051000100, "Oregon", "Multnomah County"),
		tract(19001960100, "Iowa", "Adair County"),
		tract(53033000100, "Washington", "King County"),
	}
}

func sqliteStore(t *testing.T) *SQLiteStore {
	store, err := NewSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(context.Background()) })

	return store
}

func TestLoadAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{"naive inserts", MethodInsert},
		{"bulk copy", MethodCopy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := sqliteStore(t)

			result, err := Load(ctx, store, "censusdata", fixtureTracts(), tt.method)
			require.NoError(t, err)
			assert.Equal(t, 5, result.Rows)

			validation, err := store.Validate(ctx, "censusdata")
			require.NoError(t, err)
			assert.Equal(t, &Validation{Rows: 5, States: 3, OregonCounties: 2, IowaCounties: 1}, validation)
		})
	}
}

func TestLoadRecreatesTable(t *testing.T) {
	ctx := context.Background()
	store := sqliteStore(t)

	_, err := Load(ctx, store, "censusdata", fixtureTracts(), MethodCopy)
	require.NoError(t, err)
	_, err = Load(ctx, store, "censusdata", fixtureTracts()[:2], MethodInsert)
	require.NoError(t, err)

	validation, err := store.Validate(ctx, "censusdata")
	require.NoError(t, err)
	assert.Equal(t, int64(2), validation.Rows)
}

func TestMissingValues(t *testing.T) {
	ctx := context.Background()
	store := sqliteStore(t)

	sparse := census.Tract{Values: make([]any, len(census.TractColumns))}
	sparse.Values[0] = int64(1)

	require.NoError(t, store.CreateTable(ctx, "naive"))
	require.NoError(t, store.InsertRows(ctx, "naive", []census.Tract{sparse}))

	require.NoError(t, store.CreateTable(ctx, "bulk"))
	require.NoError(t, store.CopyRows(ctx, "bulk", []census.Tract{sparse}))

	var naive, bulk any
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT "TotalPop" FROM "naive"`).Scan(&naive))
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT "TotalPop" FROM "bulk"`).Scan(&bulk))

	assert.EqualValues(t, 0, naive)
	assert.Nil(t, bulk)
}

func TestDuplicateTractRejectedByIndex(t *testing.T) {
	ctx := context.Background()
	store := sqliteStore(t)

	tracts := append(fixtureTracts(), tract(41067030100, "Oregon", "Washington County"))

	_, err := Load(ctx, store, "censusdata", tracts, MethodCopy)
	assert.Error(t, err)
}

func TestUnknownMethod(t *testing.T) {
	_, err := Load(context.Background(), sqliteStore(t), "censusdata", fixtureTracts(), "carrier-pigeon")

	assert.ErrorContains(t, err, "carrier-pigeon")
}

func TestConnect(t *testing.T) {
	store, err := Connect(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer store.Close(context.Background())

	assert.IsType(t, &SQLiteStore{}, store)

	_, err = Connect(context.Background(), "oracle", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSQLBuilders(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "censusdata"`, dropTableSQL("censusdata"))
	assert.Contains(t, createTableSQL("censusdata"), `"TractId" NUMERIC, "State" TEXT, "County" TEXT, "TotalPop" INTEGER`)
	assert.Contains(t, insertSQL("t", postgresPlaceholder), "VALUES ($1, $2, $3")
	assert.Contains(t, insertSQL("t", sqlitePlaceholder), "VALUES (?, ?, ?")
	assert.Equal(t, `CREATE INDEX "idx_t_State" ON "t" ("State")`, stateIndexSQL("t"))
}

func TestValidationWrite(t *testing.T) {
	var out bytes.Buffer

	(&Validation{Rows: 5, States: 3, OregonCounties: 2, IowaCounties: 1}).Write(&out)

	assert.Contains(t, out.String(), "Distinct counties in Oregon: 2")
}
