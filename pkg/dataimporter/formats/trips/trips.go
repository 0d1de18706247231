package trips

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
	"github.com/travigo/transitlab/pkg/transit"
)

// OPD_DATE looks like 15FEB2023:00:00:00, only the date part is used
const operatingDateLayout = "02Jan2006"

type breadcrumbRecord struct {
	EventNoTrip  string `csv:"EVENT_NO_TRIP"`
	OPDDate      string `csv:"OPD_DATE"`
	VehicleID    string `csv:"VEHICLE_ID"`
	Meters       string `csv:"METERS"`
	ActTime      string `csv:"ACT_TIME"`
	GPSLongitude string `csv:"GPS_LONGITUDE"`
	GPSLatitude  string `csv:"GPS_LATITUDE"`
}

// File is a single trip's breadcrumb CSV
type File struct {
	Readings []transit.TripReading

	formats.RowCounts
}

func (f *File) ParseFile(reader io.Reader) error {
	var records []*breadcrumbRecord

	if err := gocsv.UnmarshalCSV(formats.NewCSVReader(reader), &records); err != nil {
		return fmt.Errorf("parsing trip breadcrumbs: %w", err)
	}

	for _, record := range records {
		reading, err := record.toReading()
		if err != nil {
			log.Debug().Err(err).Str("trip", record.EventNoTrip).Msg("Dropping breadcrumb")
			f.Drop()
			continue
		}

		f.Accept()
		f.Readings = append(f.Readings, reading)
	}

	log.Info().
		Int("records", f.Parsed).
		Int("dropped", f.Dropped).
		Msg("Parsed trip breadcrumbs")

	return nil
}

func (r *breadcrumbRecord) toReading() (transit.TripReading, error) {
	timestamp, err := ParseTimestamp(r.OPDDate, r.ActTime)
	if err != nil {
		return transit.TripReading{}, err
	}

	eventNoTrip, err := strconv.ParseInt(strings.TrimSpace(r.EventNoTrip), 10, 64)
	if err != nil {
		return transit.TripReading{}, fmt.Errorf("EVENT_NO_TRIP: %w", err)
	}
	vehicleID, ok := formats.ParseWhole(r.VehicleID)
	if !ok {
		return transit.TripReading{}, fmt.Errorf("VEHICLE_ID: not a whole number %q", r.VehicleID)
	}
	meters, err := strconv.ParseFloat(strings.TrimSpace(r.Meters), 64)
	if err != nil {
		return transit.TripReading{}, fmt.Errorf("METERS: %w", err)
	}

	// Coordinates are optional on some readings
	longitude, _ := strconv.ParseFloat(strings.TrimSpace(r.GPSLongitude), 64)
	latitude, _ := strconv.ParseFloat(strings.TrimSpace(r.GPSLatitude), 64)

	return transit.TripReading{
		EventNoTrip: eventNoTrip,
		VehicleID:   vehicleID,
		Meters:      meters,
		Timestamp:   timestamp,
		Longitude:   longitude,
		Latitude:    latitude,
	}, nil
}

// ParseTimestamp combines the operating date with the seconds past its midnight
func ParseTimestamp(opdDate string, actTime string) (time.Time, error) {
	opdDate = strings.TrimSpace(opdDate)
	if len(opdDate) < len(operatingDateLayout)+1 {
		return time.Time{}, fmt.Errorf("OPD_DATE %q too short", opdDate)
	}

	date, err := time.Parse(operatingDateLayout, opdDate[:9])
	if err != nil {
		return time.Time{}, fmt.Errorf("OPD_DATE: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(actTime), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("ACT_TIME: %w", err)
	}

	return date.Add(time.Duration(seconds * float64(time.Second))), nil
}
