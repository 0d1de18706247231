package detectbias

import (
	"fmt"
	"io"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/transit"
	"github.com/travigo/transitlab/pkg/util"
)

const timestampLayout = "2006-01-02 15:04:05"

// Summary describes the stop events the detectors are about to run over
type Summary struct {
	Events    int
	Vehicles  int
	Locations int
	Boarded   int

	FirstTimestamp time.Time
	LastTimestamp  time.Time
}

func Summarize(events []transit.StopEvent) Summary {
	first, last := transit.TimestampBounds(events)

	return Summary{
		Events:         len(events),
		Vehicles:       util.CountDistinct(events, transit.StopEventVehicle),
		Locations:      util.CountDistinct(events, transit.StopEventLocation),
		Boarded:        transit.CountBoarded(events),
		FirstTimestamp: first,
		LastTimestamp:  last,
	}
}

func (s Summary) BoardingPercent() float64 {
	return percent(s.Boarded, s.Events)
}

func (s Summary) Write(w io.Writer) {
	fmt.Fprintln(w, "How many vehicles?", s.Vehicles)
	fmt.Fprintln(w, "How many stop locations?", s.Locations)
	fmt.Fprintln(w, "Min timestamp:", s.FirstTimestamp.Format(timestampLayout))
	fmt.Fprintln(w, "Max timestamp:", s.LastTimestamp.Format(timestampLayout))
	fmt.Fprintln(w, "Stop events with boarding:", s.Boarded)
	fmt.Fprintf(w, "Boarding percentage: %.2f%%\n", s.BoardingPercent())
}

// SpotlightSummary describes the stop events matching one spotlight filter
type SpotlightSummary struct {
	Name     string
	Stops    int
	Vehicles int
	Ons      int64
	Offs     int64
	Boarded  int
}

func (s SpotlightSummary) BoardingPercent() float64 {
	return percent(s.Boarded, s.Stops)
}

func (s SpotlightSummary) Write(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s - stops: %d\n", s.Name, s.Stops)
	fmt.Fprintln(w, "Unique buses:", s.Vehicles)
	fmt.Fprintln(w, "Total boarded:", s.Ons)
	fmt.Fprintln(w, "Total deboarded:", s.Offs)
	fmt.Fprintf(w, "Boarding %%: %.2f%%\n", s.BoardingPercent())
}

// CompileSpotlight checks a filter such as `LocationID == 6913` against the StopEvent fields
func CompileSpotlight(filter string) (*vm.Program, error) {
	program, err := expr.Compile(filter, expr.Env(transit.StopEvent{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling spotlight %q: %w", filter, err)
	}

	return program, nil
}

func EvaluateSpotlight(spotlight config.Spotlight, events []transit.StopEvent) (SpotlightSummary, error) {
	program, err := CompileSpotlight(spotlight.Filter)
	if err != nil {
		return SpotlightSummary{}, err
	}

	var matched []transit.StopEvent
	for _, event := range events {
		output, err := expr.Run(program, event)
		if err != nil {
			return SpotlightSummary{}, fmt.Errorf("running spotlight %s: %w", spotlight.Name, err)
		}

		if output.(bool) {
			matched = append(matched, event)
		}
	}

	summary := SpotlightSummary{
		Name:     spotlight.Name,
		Stops:    len(matched),
		Vehicles: util.CountDistinct(matched, transit.StopEventVehicle),
		Boarded:  transit.CountBoarded(matched),
	}
	for _, event := range matched {
		summary.Ons += event.Ons
		summary.Offs += event.Offs
	}

	return summary, nil
}

func percent(part int, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}
