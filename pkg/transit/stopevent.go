package transit

import "time"

// StopEvent is a single vehicle arrival at a stop location
type StopEvent struct {
	TripID     string `groups:"basic"`
	VehicleID  int64  `groups:"basic"`
	LocationID int64  `groups:"basic"`

	Ons  int64 `groups:"basic"`
	Offs int64 `groups:"basic"`

	Timestamp time.Time `groups:"basic"`

	DataSource *DataSource `groups:"internal"`
}

// Boarded reports whether at least one passenger got on
func (s StopEvent) Boarded() bool {
	return s.Ons >= 1
}

func StopEventVehicle(s StopEvent) int64 {
	return s.VehicleID
}

func StopEventLocation(s StopEvent) int64 {
	return s.LocationID
}

func CountBoarded(events []StopEvent) int {
	boarded := 0
	for _, event := range events {
		if event.Boarded() {
			boarded++
		}
	}

	return boarded
}

func TimestampBounds(events []StopEvent) (time.Time, time.Time) {
	var min, max time.Time

	for i, event := range events {
		if i == 0 || event.Timestamp.Before(min) {
			min = event.Timestamp
		}
		if i == 0 || event.Timestamp.After(max) {
			max = event.Timestamp
		}
	}

	return min, max
}
