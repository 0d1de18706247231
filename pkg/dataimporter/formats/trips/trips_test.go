package trips

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	timestamp, err := ParseTimestamp("15FEB2023:00:00:00", "20000")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 2, 15, 5, 33, 20, 0, time.UTC), timestamp)

	_, err = ParseTimestamp("15FEB", "20000")
	assert.Error(t, err)

	_, err = ParseTimestamp("15XYZ2023:00:00:00", "20000")
	assert.Error(t, err)

	_, err = ParseTimestamp("15FEB2023:00:00:00", "")
	assert.Error(t, err)
}

func TestFileParseFile(t *testing.T) {
	csv := strings.Join([]string{
		"EVENT_NO_TRIP,EVENT_NO_STOP,OPD_DATE,VEHICLE_ID,METERS,ACT_TIME,GPS_LONGITUDE,GPS_LATITUDE,GPS_SATELLITES,GPS_HDOP",
		"259172515,259172517,15FEB2023:00:00:00,4223,0,20000,-122.6,45.5,12,0.7",
		"259172515,259172517,15FEB2023:00:00:00,4223,50,20005,-122.6,45.5,12,0.7",
		"259172515,259172517,15FEB2023:00:00:00,4223,,20010,-122.6,45.5,12,0.7",
		"259172515,259172517,,4223,80,20015,-122.6,45.5,12,0.7",
	}, "\n")

	file := &File{}
	err := file.ParseFile(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, file.Readings, 2)
	assert.Equal(t, int64(259172515), file.Readings[0].EventNoTrip)
	assert.Equal(t, int64(4223), file.Readings[0].VehicleID)
	assert.Equal(t, 50.0, file.Readings[1].Meters)
	assert.Equal(t, 5*time.Second, file.Readings[1].Timestamp.Sub(file.Readings[0].Timestamp))
	assert.Equal(t, -122.6, file.Readings[0].Longitude)
	assert.Equal(t, 2, file.Dropped)
}
