package stats

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/aclements/go-moremath/stats"
)

type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
	Sum    float64
}

func Describe(values []float64) Summary {
	if len(values) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}
	}

	sample := stats.Sample{Xs: append([]float64(nil), values...)}
	sample.Sort()

	min, max := sample.Bounds()

	return Summary{
		Count:  len(values),
		Mean:   sample.Mean(),
		Std:    sample.StdDev(),
		Min:    min,
		Q25:    sample.Quantile(0.25),
		Median: sample.Quantile(0.5),
		Q75:    sample.Quantile(0.75),
		Max:    max,
		Sum:    sample.Sum(),
	}
}

// WriteSummaries prints summaries side by side, one column per name
func WriteSummaries(w io.Writer, names []string, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "\t")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)

	rows := []struct {
		label string
		value func(Summary) float64
	}{
		{"count", func(s Summary) float64 { return float64(s.Count) }},
		{"mean", func(s Summary) float64 { return s.Mean }},
		{"std", func(s Summary) float64 { return s.Std }},
		{"min", func(s Summary) float64 { return s.Min }},
		{"25%", func(s Summary) float64 { return s.Q25 }},
		{"50%", func(s Summary) float64 { return s.Median }},
		{"75%", func(s Summary) float64 { return s.Q75 }},
		{"max", func(s Summary) float64 { return s.Max }},
	}

	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t", row.label)
		for _, summary := range summaries {
			fmt.Fprintf(tw, "%.2f\t", row.value(summary))
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
