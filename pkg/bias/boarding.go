package bias

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/stats"
	"github.com/travigo/transitlab/pkg/transit"
)

const BoardingDetectorName = "boarding"

// BoardingDetector flags vehicles whose share of stops with a boarding
// differs from the fleet-wide share under an exact binomial test
type BoardingDetector struct {
	Alpha       float64
	Alternative stats.Alternative
	Workers     int
	RunID       string
}

func NewBoardingDetector() *BoardingDetector {
	return &BoardingDetector{
		Alpha:       DefaultBoardingAlpha,
		Alternative: stats.TwoSided,
		Workers:     1,
	}
}

// BoardingBaseline is the fraction of all stop events with at least one boarding
func BoardingBaseline(events []transit.StopEvent) (float64, error) {
	if len(events) == 0 {
		return math.NaN(), fmt.Errorf("%w: no stop events", ErrInvalidBaseline)
	}

	return float64(transit.CountBoarded(events)) / float64(len(events)), nil
}

func (d *BoardingDetector) Detect(groups map[int64][]transit.StopEvent, baseline float64) (*Report, error) {
	if math.IsNaN(baseline) || baseline < 0 || baseline > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseline, baseline)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no vehicles", ErrNoData)
	}

	alpha := d.Alpha
	if alpha == 0 {
		alpha = DefaultBoardingAlpha
	}

	evaluations := evaluateGroups(groups, d.Workers, func(vehicleID int64, events []transit.StopEvent) evaluation {
		n := len(events)
		if n == 0 {
			return evaluation{VehicleID: vehicleID, Skipped: SkipReasonEmpty}
		}

		k := transit.CountBoarded(events)

		pValue, err := stats.BinomialTest(k, n, baseline, d.Alternative)
		if err != nil {
			log.Debug().Err(err).Int64("vehicle", vehicleID).Msg("Boarding test undetermined")
			return evaluation{VehicleID: vehicleID, Skipped: SkipReasonUndetermined, Err: err}
		}

		return evaluation{VehicleID: vehicleID, PValue: pValue}
	})

	report := buildReport(BoardingDetectorName, d.RunID, alpha, evaluations)

	log.Info().
		Int("tested", report.Tested).
		Int("skipped", report.SkippedCount()).
		Int("flagged", len(report.Results)).
		Float64("baseline", baseline).
		Msg("Boarding bias detection complete")

	return report, nil
}
