package stats

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"
)

type Matrix struct {
	Names  []string
	Values [][]float64
}

func (m Matrix) At(row string, column string) float64 {
	i, j := -1, -1
	for index, name := range m.Names {
		if name == row {
			i = index
		}
		if name == column {
			j = index
		}
	}

	if i < 0 || j < 0 {
		return math.NaN()
	}

	return m.Values[i][j]
}

func (m Matrix) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "\t")
	for _, name := range m.Names {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)

	for i, name := range m.Names {
		fmt.Fprintf(tw, "%s\t", name)
		for j := range m.Names {
			fmt.Fprintf(tw, "%.6f\t", m.Values[i][j])
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// CorrelationMatrix computes Pearson correlation between every pair of
// columns. Rows where either value is NaN are left out of that pair only.
func CorrelationMatrix(columns map[string][]float64, order []string) Matrix {
	matrix := Matrix{
		Names:  order,
		Values: make([][]float64, len(order)),
	}

	for i := range order {
		matrix.Values[i] = make([]float64, len(order))
	}

	for i, first := range order {
		for j := i; j < len(order); j++ {
			correlation := pairwiseCorrelation(columns[first], columns[order[j]])

			matrix.Values[i][j] = correlation
			matrix.Values[j][i] = correlation
		}
	}

	return matrix
}

func pairwiseCorrelation(x []float64, y []float64) float64 {
	var xs, ys []float64

	for i := 0; i < len(x) && i < len(y); i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}

		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	if len(xs) < 2 {
		return math.NaN()
	}

	return stat.Correlation(xs, ys, nil)
}
