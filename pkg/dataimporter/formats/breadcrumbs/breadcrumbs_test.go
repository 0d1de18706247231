package breadcrumbs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitlab/pkg/transit"
)

func TestFileParseFile(t *testing.T) {
	csv := strings.Join([]string{
		" EVENT_NO_TRIP , VEHICLE_NUMBER , RELPOS ",
		"222207720,4062,0.25",
		"222207720,4062,-0.5",
		"222207721,3001,",
		"222207721,,0.1",
		"222207721,3001,1e-3",
		"222207722,3002,NaN",
		"222207723,4521.0,0.75",
		"222207723,4521.5,0.75",
	}, "\n")

	file := &File{}
	err := file.ParseFile(strings.NewReader(csv))

	require.NoError(t, err)
	assert.Equal(t, []transit.BreadcrumbSample{
		{VehicleID: 4062, RelPos: 0.25},
		{VehicleID: 4062, RelPos: -0.5},
		{VehicleID: 3001, RelPos: 0.001},
		{VehicleID: 4521, RelPos: 0.75},
	}, file.Samples)
	assert.Equal(t, 4, file.Dropped)
}

func TestFileParseFileMissingColumns(t *testing.T) {
	file := &File{}

	err := file.ParseFile(strings.NewReader("vehicle_number\n4062\n"))

	require.NoError(t, err)
	assert.Empty(t, file.Samples)
	assert.Equal(t, 1, file.Dropped)
}
