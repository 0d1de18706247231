package stopevents

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
	"github.com/travigo/transitlab/pkg/transit"
	"github.com/travigo/transitlab/pkg/util"
	"golang.org/x/net/html/charset"
)

var requiredColumns = []string{"vehicle_number", "arrive_time", "location_id", "ons", "offs", "trip_number"}

// Document is a TriMet stop events page, one HTML table per trip
type Document struct {
	ServiceDate time.Time
	DataSource  *transit.DataSource

	Events []transit.StopEvent

	formats.RowCounts
}

func (d *Document) ParseFile(reader io.Reader) error {
	utf8Reader, err := charset.NewReader(reader, "text/html")
	if err != nil {
		return fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return fmt.Errorf("parsing html: %w", err)
	}

	tables := 0

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var header map[string]int

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if header == nil {
				header = parseHeader(row)
				if header != nil {
					tables++
				}
				return
			}

			cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
				return strings.TrimSpace(cell.Text())
			})
			if len(cells) == 0 {
				return
			}

			event, ok := d.parseRow(header, cells)
			if !ok {
				d.Drop()
				return
			}

			d.Accept()
			d.Events = append(d.Events, event)
		})
	})

	log.Info().
		Int("tables", tables).
		Int("events", d.Parsed).
		Int("dropped", d.Dropped).
		Msg("Parsed stop events")

	return nil
}

// parseHeader returns nil unless the row is a header with every required column
func parseHeader(row *goquery.Selection) map[string]int {
	columns := row.Find("th").Map(func(_ int, cell *goquery.Selection) string {
		return strings.TrimSpace(cell.Text())
	})

	if !util.ContainsAllStrings(columns, requiredColumns) {
		return nil
	}

	header := map[string]int{}
	for i, column := range columns {
		header[column] = i
	}

	return header
}

func (d *Document) parseRow(header map[string]int, cells []string) (transit.StopEvent, bool) {
	value := func(column string) string {
		index := header[column]
		if index >= len(cells) {
			return ""
		}
		return cells[index]
	}

	tripID := value("trip_number")
	if tripID == "" {
		return transit.StopEvent{}, false
	}

	vehicleID, ok := formats.ParseWhole(value("vehicle_number"))
	if !ok {
		return transit.StopEvent{}, false
	}
	locationID, ok := formats.ParseWhole(value("location_id"))
	if !ok {
		return transit.StopEvent{}, false
	}
	ons, ok := formats.ParseWhole(value("ons"))
	if !ok || ons < 0 {
		return transit.StopEvent{}, false
	}
	offs, ok := formats.ParseWhole(value("offs"))
	if !ok || offs < 0 {
		return transit.StopEvent{}, false
	}

	arriveTime := value("arrive_time")
	if !util.IsDigits(arriveTime) {
		return transit.StopEvent{}, false
	}
	seconds, err := strconv.ParseInt(arriveTime, 10, 64)
	if err != nil {
		return transit.StopEvent{}, false
	}

	return transit.StopEvent{
		TripID:     tripID,
		VehicleID:  vehicleID,
		LocationID: locationID,
		Ons:        ons,
		Offs:       offs,
		Timestamp:  util.AddSecondsToDate(d.ServiceDate, seconds),
		DataSource: d.DataSource,
	}, true
}
