package transit

import "time"

// TripReading is a breadcrumb from a single trip with the cumulative distance travelled
type TripReading struct {
	EventNoTrip int64
	VehicleID   int64

	Meters    float64
	Timestamp time.Time

	Longitude float64
	Latitude  float64

	// Metres per second since the previous reading
	Speed float64
}
