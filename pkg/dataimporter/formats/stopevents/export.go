package stopevents

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/travigo/transitlab/pkg/transit"
)

const timestampFormat = "2006-01-02 15:04:05"

type stopRecord struct {
	TripID     string `csv:"trip_id"`
	VehicleID  int64  `csv:"vehicle_number"`
	LocationID int64  `csv:"location_id"`
	Ons        int64  `csv:"ons"`
	Offs       int64  `csv:"offs"`
	Timestamp  string `csv:"tstamp"`
}

// WriteCSV exports the cleaned stop events table
func WriteCSV(writer io.Writer, events []transit.StopEvent) error {
	records := make([]*stopRecord, 0, len(events))

	for _, event := range events {
		records = append(records, &stopRecord{
			TripID:     event.TripID,
			VehicleID:  event.VehicleID,
			LocationID: event.LocationID,
			Ons:        event.Ons,
			Offs:       event.Offs,
			Timestamp:  event.Timestamp.Format(timestampFormat),
		})
	}

	return gocsv.Marshal(&records, writer)
}
