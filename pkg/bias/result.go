package bias

import (
	"cmp"

	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/transitlab/pkg/util"
	"golang.org/x/exp/slices"
)

const (
	DefaultBoardingAlpha = 0.05
	DefaultGPSAlpha      = 0.005
)

type SkipReason string

const (
	SkipReasonEmpty         SkipReason = "empty"
	SkipReasonTooFewSamples SkipReason = "too-few-samples"
	SkipReasonUndetermined  SkipReason = "undetermined"
)

// Result is a vehicle whose data deviated from the fleet
type Result struct {
	VehicleID int64   `csv:"vehicle_number" json:"vehicle_number" groups:"basic,detailed"`
	PValue    float64 `csv:"p_value" json:"p_value" groups:"basic,detailed"`
}

type Report struct {
	Detector string  `json:"detector" groups:"detailed"`
	RunID    string  `json:"run_id" groups:"detailed"`
	Alpha    float64 `json:"alpha" groups:"detailed"`

	Tested  int            `json:"tested" groups:"detailed"`
	Skipped map[string]int `json:"skipped" groups:"detailed"`

	Results []Result `json:"results" groups:"basic,detailed"`
}

func (r *Report) SkippedCount() int {
	total := 0
	for _, count := range r.Skipped {
		total += count
	}

	return total
}

// SortResults orders by ascending p-value, ties by vehicle id
func SortResults(results []Result) {
	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(a.PValue, b.PValue); c != 0 {
			return c
		}
		return cmp.Compare(a.VehicleID, b.VehicleID)
	})
}

type evaluation struct {
	VehicleID int64
	PValue    float64
	Skipped   SkipReason
	Err       error
}

// evaluateGroups runs test over every group on a bounded pool. Groups are
// submitted in vehicle order but the pool gives no ordering guarantee.
func evaluateGroups[T any](groups map[int64]T, workers int, test func(int64, T) evaluation) []evaluation {
	if workers < 1 {
		workers = 1
	}

	p := pool.NewWithResults[evaluation]().WithMaxGoroutines(workers)

	for _, vehicleID := range util.SortedKeys(groups) {
		group := groups[vehicleID]

		p.Go(func() evaluation {
			return test(vehicleID, group)
		})
	}

	return p.Wait()
}

func buildReport(detector string, runID string, alpha float64, evaluations []evaluation) *Report {
	report := &Report{
		Detector: detector,
		RunID:    runID,
		Alpha:    alpha,
		Skipped:  map[string]int{},
		Results:  []Result{},
	}

	for _, e := range evaluations {
		if e.Skipped != "" {
			report.Skipped[string(e.Skipped)]++
			continue
		}

		report.Tested++

		if e.PValue < alpha {
			report.Results = append(report.Results, Result{VehicleID: e.VehicleID, PValue: e.PValue})
		}
	}

	SortResults(report.Results)

	return report
}
