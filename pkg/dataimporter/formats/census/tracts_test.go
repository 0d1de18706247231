package census

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tractCSV(rows ...string) string {
	return strings.Join(append([]string{strings.Join(ColumnNames(), ",")}, rows...), "\n")
}

func tractRow(id string, state string, county string, totalPop string) string {
	fields := []string{id, state, county, totalPop}
	for i := len(fields); i < len(TractColumns); i++ {
		fields = append(fields, "1.5")
	}
	// Men, Women and Employed are integers
	fields[4], fields[5], fields[31] = "10", "12", "7"

	return strings.Join(fields, ",")
}

func TestTractFileParseFile(t *testing.T) {
	file := &TractFile{}

	err := file.ParseFile(strings.NewReader(tractCSV(
		tractRow("41001950100", "Oregon", "Baker County", "3000"),
		tractRow("19001960100", "Iowa", "\"Adair County\"", ""),
		tractRow("", "Iowa", "Adair County", "100"),
		tractRow("abc", "Iowa", "Adair County", "100"),
	)))

	require.NoError(t, err)
	require.Len(t, file.Tracts, 2)
	assert.Equal(t, 2, file.Dropped)

	first := file.Tracts[0]
	assert.Equal(t, int64(41001950100), first.TractID())
	assert.Equal(t, "Oregon", first.Values[1])
	assert.Equal(t, int64(3000), first.Values[3])
	assert.Equal(t, 1.5, first.Values[6])

	second := file.Tracts[1]
	assert.Equal(t, "Adair County", second.Values[2])
	assert.Nil(t, second.Values[3])
	assert.Equal(t, 0, second.WithZeroes()[3])
}

func TestColumnNames(t *testing.T) {
	names := ColumnNames()

	assert.Len(t, names, 37)
	assert.Equal(t, "TractId", names[0])
	assert.Equal(t, "Unemployment", names[36])
}
