package transformation

import (
	"fmt"
	"io"
	"math"

	"github.com/travigo/transitlab/pkg/transit"
)

// DeriveSpeed returns a copy of readings with Speed set from the distance and
// time travelled since the previous reading. The first reading, and any
// reading that did not move forward in time, gets a speed of 0.
func DeriveSpeed(readings []transit.TripReading) []transit.TripReading {
	derived := make([]transit.TripReading, len(readings))
	copy(derived, readings)

	for i := range derived {
		derived[i].Speed = 0

		if i == 0 {
			continue
		}

		elapsed := derived[i].Timestamp.Sub(derived[i-1].Timestamp).Seconds()
		if elapsed <= 0 {
			continue
		}

		derived[i].Speed = (derived[i].Meters - derived[i-1].Meters) / elapsed
	}

	return derived
}

type SpeedSummary struct {
	Records int
	Min     float64
	Max     float64
	Mean    float64
}

func SummariseSpeed(readings []transit.TripReading) SpeedSummary {
	summary := SpeedSummary{
		Records: len(readings),
		Min:     math.NaN(),
		Max:     math.NaN(),
		Mean:    math.NaN(),
	}

	if len(readings) == 0 {
		return summary
	}

	var total float64
	summary.Min = math.Inf(1)
	summary.Max = math.Inf(-1)

	for _, reading := range readings {
		summary.Min = math.Min(summary.Min, reading.Speed)
		summary.Max = math.Max(summary.Max, reading.Speed)
		total += reading.Speed
	}

	summary.Mean = total / float64(len(readings))

	return summary
}

func (s SpeedSummary) Write(w io.Writer) {
	fmt.Fprintf(w, "Number of records: %d\n", s.Records)
	fmt.Fprintf(w, "Minimum speed: %v meters/second\n", s.Min)
	fmt.Fprintf(w, "Maximum speed: %v meters/second\n", s.Max)
	fmt.Fprintf(w, "Average speed: %v meters/second\n", s.Mean)
}
