package bias

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/stats"
)

const PositionDetectorName = "gps"

// PositionDetector flags vehicles whose relative positions have a different
// mean to the whole fleet under Welch's t-test. The fleet population includes
// the vehicle's own samples.
type PositionDetector struct {
	Alpha   float64
	Workers int
	RunID   string
}

func NewPositionDetector() *PositionDetector {
	return &PositionDetector{
		Alpha:   DefaultGPSAlpha,
		Workers: 1,
	}
}

func (d *PositionDetector) Detect(groups map[int64][]float64, population []float64) (*Report, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no vehicles", ErrNoData)
	}
	if len(population) == 0 {
		return nil, fmt.Errorf("%w: empty position population", ErrNoData)
	}

	alpha := d.Alpha
	if alpha == 0 {
		alpha = DefaultGPSAlpha
	}

	evaluations := evaluateGroups(groups, d.Workers, func(vehicleID int64, positions []float64) evaluation {
		if len(positions) < 2 {
			return evaluation{VehicleID: vehicleID, Skipped: SkipReasonTooFewSamples}
		}

		result, err := stats.WelchTTest(positions, population)
		if err != nil {
			if !errors.Is(err, stats.ErrZeroVariance) && !errors.Is(err, stats.ErrSampleSize) {
				log.Error().Err(err).Int64("vehicle", vehicleID).Msg("Position test failed")
			}

			return evaluation{VehicleID: vehicleID, Skipped: SkipReasonUndetermined, Err: err}
		}

		return evaluation{VehicleID: vehicleID, PValue: result.P}
	})

	report := buildReport(PositionDetectorName, d.RunID, alpha, evaluations)

	log.Info().
		Int("tested", report.Tested).
		Int("skipped", report.SkippedCount()).
		Int("flagged", len(report.Results)).
		Int("population", len(population)).
		Msg("GPS bias detection complete")

	return report, nil
}
