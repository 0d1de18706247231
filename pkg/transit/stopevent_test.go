package transit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopEventBoarded(t *testing.T) {
	assert.True(t, StopEvent{Ons: 1}.Boarded())
	assert.True(t, StopEvent{Ons: 7}.Boarded())
	assert.False(t, StopEvent{Ons: 0, Offs: 3}.Boarded())
}

func TestCountBoarded(t *testing.T) {
	events := []StopEvent{{Ons: 0}, {Ons: 2}, {Ons: 1}, {Ons: 0}}

	assert.Equal(t, 2, CountBoarded(events))
	assert.Equal(t, 0, CountBoarded(nil))
}

func TestTimestampBounds(t *testing.T) {
	base := time.Date(2022, 12, 7, 0, 0, 0, 0, time.UTC)
	events := []StopEvent{
		{Timestamp: base.Add(2 * time.Hour)},
		{Timestamp: base.Add(1 * time.Hour)},
		{Timestamp: base.Add(5 * time.Hour)},
	}

	min, max := TimestampBounds(events)

	assert.Equal(t, base.Add(time.Hour), min)
	assert.Equal(t, base.Add(5*time.Hour), max)
}

func TestPositionsByVehicle(t *testing.T) {
	samples := []BreadcrumbSample{
		{VehicleID: 1, RelPos: 0.1},
		{VehicleID: 2, RelPos: 0.5},
		{VehicleID: 1, RelPos: 0.3},
	}

	assert.Equal(t, []float64{0.1, 0.5, 0.3}, Positions(samples))
	assert.Equal(t, map[int64][]float64{
		1: {0.1, 0.3},
		2: {0.5},
	}, PositionsByVehicle(samples))
}
