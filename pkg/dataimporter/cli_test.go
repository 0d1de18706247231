package dataimporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/transitlab/pkg/dataimporter/datasets"
)

func TestWriteDatasets(t *testing.T) {
	var out bytes.Buffer

	err := WriteDatasets(&out, []datasets.DataSet{
		{
			Identifier: "trimet-stops",
			Format:     datasets.DataSetFormatTriMetStopEvents,
			Provider:   datasets.Provider{Name: "TriMet"},
			Source:     "https://busdata.cs.pdx.edu/api/getStopEvents?vehicle_num=4062",
		},
		{
			Identifier: "acs-tracts",
			Format:     datasets.DataSetFormatACSTract,
			Source:     "./acs2017_census_tract_data.csv",
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "IDENTIFIER"))
	assert.Contains(t, lines[1], "trimet-stopevents-html")
	assert.Contains(t, lines[1], "TriMet")
	assert.Contains(t, lines[2], "acs-tracts")
}
