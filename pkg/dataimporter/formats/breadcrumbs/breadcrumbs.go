package breadcrumbs

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
	"github.com/travigo/transitlab/pkg/transit"
)

type relPosRecord struct {
	VehicleNumber string `csv:"vehicle_number"`
	RelPos        string `csv:"relpos"`
}

// File is a TriMet relative position breadcrumb export
type File struct {
	Samples []transit.BreadcrumbSample

	formats.RowCounts
}

func (f *File) ParseFile(reader io.Reader) error {
	var records []*relPosRecord

	if err := gocsv.UnmarshalCSV(formats.NewNormalisedCSVReader(reader), &records); err != nil {
		return fmt.Errorf("parsing breadcrumbs: %w", err)
	}

	for _, record := range records {
		vehicleID, ok := formats.ParseWhole(record.VehicleNumber)
		if !ok {
			f.Drop()
			continue
		}

		relPos, err := strconv.ParseFloat(strings.TrimSpace(record.RelPos), 64)
		if err != nil || math.IsNaN(relPos) || math.IsInf(relPos, 0) {
			f.Drop()
			continue
		}

		f.Accept()
		f.Samples = append(f.Samples, transit.BreadcrumbSample{
			VehicleID: vehicleID,
			RelPos:    relPos,
		})
	}

	log.Info().
		Int("samples", f.Parsed).
		Int("dropped", f.Dropped).
		Msg("Parsed breadcrumbs")

	return nil
}
